package relocation

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/service/impression"
	"github.com/Taichi-iskw/tagscribe/internal/telemetry"
)

// Action names a relocation
type Action string

const (
	ActionMovePrimary       Action = "move_primary"
	ActionMoveToSection     Action = "move_to_section"
	ActionDetachFromSection Action = "detach_from_section"
)

// Request carries the inputs of every action; only the fields of Action are read
type Request struct {
	Action             Action
	PrimaryTagID       string
	TargetMasterTagID  string
	ImpressionID       string
	TargetSectionID    *string
	TargetSubsectionID *string
}

// Result reports what a relocation changed
type Result struct {
	Action           Action  `json:"action"`
	PrimaryTagID     string  `json:"primaryTagId,omitempty"`
	MasterTagID      string  `json:"masterTagId,omitempty"`
	ImpressionsMoved int64   `json:"impressionsMoved,omitempty"`
	ImpressionID     string  `json:"impressionId,omitempty"`
	SectionID        *string `json:"sectionId,omitempty"`
	SubsectionID     *string `json:"subsectionId,omitempty"`
}

// Service moves tags and impressions within the taxonomy and between sections
type Service interface {
	Relocate(ctx context.Context, req Request) (*Result, error)
}

// service implements Service
type service struct {
	tx  repository.TxRunner
	log *logger.Logger
}

// NewService creates a relocation service
func NewService(tx repository.TxRunner, log *logger.Logger) Service {
	return &service{
		tx:  tx,
		log: log.With("service", "RelocationService"),
	}
}

// Relocate dispatches on the request's action; each action is one transaction
func (s *service) Relocate(ctx context.Context, req Request) (result *Result, err error) {
	ctx, span := telemetry.Start(ctx, "relocation", "Relocate", attribute.String("action", string(req.Action)))
	defer func() { telemetry.End(span, err) }()

	switch req.Action {
	case ActionMovePrimary:
		return s.movePrimary(ctx, req)
	case ActionMoveToSection:
		return s.moveToSection(ctx, req)
	case ActionDetachFromSection:
		return s.detach(ctx, req)
	default:
		return nil, apperrors.Validation("unknown relocation action").
			WithDetails(map[string]any{"action": string(req.Action)})
	}
}

func (s *service) movePrimary(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.PrimaryTagID) == "" || strings.TrimSpace(req.TargetMasterTagID) == "" {
		return nil, apperrors.Validation("primaryTagId and targetMasterTagId are required")
	}

	var moved int64
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		if _, err := stores.Taxonomy.GetMasterTag(ctx, req.TargetMasterTagID); err != nil {
			return err
		}
		if _, err := stores.Taxonomy.GetPrimaryTag(ctx, req.PrimaryTagID); err != nil {
			return err
		}
		if err := stores.Taxonomy.MovePrimaryTag(ctx, req.PrimaryTagID, req.TargetMasterTagID); err != nil {
			return err
		}
		n, err := stores.Impressions.ReassignMaster(ctx, req.PrimaryTagID, req.TargetMasterTagID)
		if err != nil {
			return err
		}
		moved = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("primary tag moved",
		"primary_tag_id", req.PrimaryTagID,
		"master_tag_id", req.TargetMasterTagID,
		"impressions", moved,
	)
	return &Result{
		Action:           ActionMovePrimary,
		PrimaryTagID:     req.PrimaryTagID,
		MasterTagID:      req.TargetMasterTagID,
		ImpressionsMoved: moved,
	}, nil
}

func (s *service) moveToSection(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.ImpressionID) == "" {
		return nil, apperrors.Validation("impressionId is required")
	}
	if req.TargetSectionID == nil && req.TargetSubsectionID == nil {
		return nil, apperrors.Validation("targetSectionId or targetSubsectionId is required")
	}

	var sectionID, subsectionID *string
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		imp, err := stores.Impressions.GetByID(ctx, req.ImpressionID)
		if err != nil {
			return err
		}
		sectionID, subsectionID, err = impression.ResolvePlacement(ctx, stores, imp.TranscriptID, req.TargetSectionID, req.TargetSubsectionID)
		if err != nil {
			return err
		}
		return stores.Impressions.SetSection(ctx, imp.ID, sectionID, subsectionID)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("impression moved to section", "impression_id", req.ImpressionID, "section_id", *sectionID)
	return &Result{
		Action:       ActionMoveToSection,
		ImpressionID: req.ImpressionID,
		SectionID:    sectionID,
		SubsectionID: subsectionID,
	}, nil
}

func (s *service) detach(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.ImpressionID) == "" {
		return nil, apperrors.Validation("impressionId is required")
	}

	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		if _, err := stores.Impressions.GetByID(ctx, req.ImpressionID); err != nil {
			return err
		}
		return stores.Impressions.SetSection(ctx, req.ImpressionID, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("impression detached from section", "impression_id", req.ImpressionID)
	return &Result{Action: ActionDetachFromSection, ImpressionID: req.ImpressionID}, nil
}
