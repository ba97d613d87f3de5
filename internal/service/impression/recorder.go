package impression

import (
	"context"
	"strings"

	"github.com/Taichi-iskw/tagscribe/internal/logger"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
)

// PrimaryTagInput is one primary tag applied by a RecordImpression call.
// BlockID, SelectedText and SelectionRange override the call-level selection for this entry.
type PrimaryTagInput struct {
	Name           string
	ID             *string
	Comment        *string
	SecondaryTags  []string
	BlockID        *string
	SelectedText   *string
	SelectionRange *model.SelectionRange
}

// RecordInput is a single tagging action on a transcript selection
type RecordInput struct {
	TranscriptID         string
	BlockIDs             []string
	MasterTagName        string
	MasterTagDescription *string
	BranchNames          []string
	PrimaryTags          []PrimaryTagInput
	SectionID            *string
	SubsectionID         *string
	SelectedText         *string
	SelectionRanges      []model.SelectionRange
	Comment              *string
	CreatedBy            *string
}

// RecordResult describes what a RecordImpression call created or reused
type RecordResult struct {
	MasterTag       *model.MasterTag       `json:"masterTag"`
	IsNewMasterTag  bool                   `json:"isNewMasterTag"`
	MasterTagClosed bool                   `json:"masterTagClosed"`
	BranchTags      []*model.BranchTag     `json:"branchTags"`
	Impressions     []*model.TagImpression `json:"impressions"`
}

// DeleteResult reports an idempotent delete
type DeleteResult struct {
	Deleted        bool `json:"deleted"`
	AlreadyDeleted bool `json:"alreadyDeleted"`
}

// UpdateInput patches an impression; exactly one field must be set
type UpdateInput struct {
	Comment             *string
	NewSecondaryTagName *string
}

// Recorder writes tag impressions together with any taxonomy nodes they need
type Recorder interface {
	RecordImpression(ctx context.Context, in RecordInput) (*RecordResult, error)
	GetImpression(ctx context.Context, id string) (*model.TagImpression, error)
	DeleteImpression(ctx context.Context, id string) (*DeleteResult, error)
	UpdateImpression(ctx context.Context, id string, in UpdateInput) (*model.TagImpression, error)
}

// recorder implements Recorder
type recorder struct {
	stores repository.Stores
	tx     repository.TxRunner
	log    *logger.Logger
}

// NewRecorder creates an impression recorder
func NewRecorder(stores repository.Stores, tx repository.TxRunner, log *logger.Logger) Recorder {
	return &recorder{
		stores: stores,
		tx:     tx,
		log:    log.With("service", "ImpressionRecorder"),
	}
}

func trimmedPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
