package impression

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	taxonomysvc "github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
	"github.com/Taichi-iskw/tagscribe/internal/telemetry"
	"github.com/Taichi-iskw/tagscribe/internal/textnorm"
)

// RecordImpression resolves the master tag, ensures branches, creates or reuses primary
// tag instances and writes one impression per primary tag, all in one transaction
func (r *recorder) RecordImpression(ctx context.Context, in RecordInput) (result *RecordResult, err error) {
	ctx, span := telemetry.Start(ctx, "impression", "RecordImpression",
		attribute.String("transcript_id", in.TranscriptID),
		attribute.Int("primary_tags", len(in.PrimaryTags)),
	)
	defer func() { telemetry.End(span, err) }()

	if err := validateRecord(in); err != nil {
		return nil, err
	}

	err = r.tx.InTx(ctx, func(stores repository.Stores) error {
		if _, err := stores.Transcripts.GetByID(ctx, in.TranscriptID); err != nil {
			return err
		}
		sectionID, subsectionID, err := ResolvePlacement(ctx, stores, in.TranscriptID, in.SectionID, in.SubsectionID)
		if err != nil {
			return err
		}

		master, isNew, err := taxonomysvc.ResolveMasterTag(ctx, stores.Taxonomy, taxonomysvc.MasterTagInput{
			Name:        in.MasterTagName,
			Description: in.MasterTagDescription,
		})
		if err != nil {
			return err
		}

		res := &RecordResult{
			MasterTag:       master,
			IsNewMasterTag:  isNew,
			MasterTagClosed: master.IsClosed,
			BranchTags:      []*model.BranchTag{},
			Impressions:     []*model.TagImpression{},
		}

		seen := make(map[string]bool, len(in.BranchNames))
		for _, name := range in.BranchNames {
			name = textnorm.Name(name)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			branch, _, err := taxonomysvc.EnsureBranchTag(ctx, stores.Taxonomy, master.ID, name, nil)
			if err != nil {
				return err
			}
			res.BranchTags = append(res.BranchTags, branch)
		}

		base := model.TagImpression{
			TranscriptID:    in.TranscriptID,
			MasterTagID:     master.ID,
			BlockIDs:        in.BlockIDs,
			SelectedText:    in.SelectedText,
			SelectionRanges: in.SelectionRanges,
			SectionID:       sectionID,
			SubsectionID:    subsectionID,
			Comment:         trimmedPtr(in.Comment),
			CreatedBy:       trimmedPtr(in.CreatedBy),
		}

		if len(in.PrimaryTags) == 0 {
			if len(res.BranchTags) == 0 && base.Comment == nil {
				return apperrors.Validation("an impression without primary tags needs a branch name or a comment")
			}
			imp := base
			imp.ID = uuid.NewString()
			imp.SecondaryTagIDs = []string{}
			if err := stores.Impressions.Create(ctx, &imp); err != nil {
				return err
			}
			res.Impressions = append(res.Impressions, &imp)
			result = res
			return nil
		}

		for _, entry := range in.PrimaryTags {
			imp, err := recordPrimary(ctx, stores, master, base, entry)
			if err != nil {
				return err
			}
			res.Impressions = append(res.Impressions, imp)
		}
		result = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.MasterTagClosed {
		r.log.Warn("impression recorded on a closed master tag",
			"master_tag_id", result.MasterTag.ID,
			"transcript_id", in.TranscriptID,
		)
	}
	r.log.Info("impressions recorded",
		"transcript_id", in.TranscriptID,
		"master_tag_id", result.MasterTag.ID,
		"new_master_tag", result.IsNewMasterTag,
		"count", len(result.Impressions),
	)
	return result, nil
}

// recordPrimary creates or reuses one primary tag instance and writes its impression
func recordPrimary(ctx context.Context, stores repository.Stores, master *model.MasterTag, base model.TagImpression, entry PrimaryTagInput) (*model.TagImpression, error) {
	var primary *model.PrimaryTag
	if entry.ID != nil {
		existing, err := stores.Taxonomy.GetPrimaryTag(ctx, *entry.ID)
		if err != nil {
			return nil, err
		}
		if existing.MasterTagID != master.ID {
			return nil, apperrors.Validation("primary tag belongs to a different master tag").
				WithDetails(map[string]any{"primaryTagId": existing.ID, "masterTagId": existing.MasterTagID})
		}
		if err := taxonomysvc.FillInstanceIndex(ctx, stores.Taxonomy, existing); err != nil {
			return nil, err
		}
		primary = existing
	} else {
		created, err := taxonomysvc.NewPrimaryInstance(ctx, stores.Taxonomy, master.ID, entry.Name)
		if err != nil {
			return nil, err
		}
		primary = created
	}

	secondaryIDs := make([]string, 0, len(entry.SecondaryTags))
	for _, name := range entry.SecondaryTags {
		if strings.TrimSpace(name) == "" {
			continue
		}
		secondary, err := taxonomysvc.NewSecondaryTag(ctx, stores.Taxonomy, primary.ID, name)
		if err != nil {
			return nil, err
		}
		secondaryIDs = append(secondaryIDs, secondary.ID)
	}

	imp := base
	imp.ID = uuid.NewString()
	imp.PrimaryTagID = &primary.ID
	imp.SecondaryTagIDs = secondaryIDs
	if entry.BlockID != nil {
		imp.BlockIDs = []string{*entry.BlockID}
	}
	if entry.SelectedText != nil {
		imp.SelectedText = entry.SelectedText
	}
	if entry.SelectionRange != nil {
		imp.SelectionRanges = []model.SelectionRange{*entry.SelectionRange}
	}
	if c := trimmedPtr(entry.Comment); c != nil {
		imp.Comment = c
	}

	if err := stores.Impressions.Create(ctx, &imp); err != nil {
		return nil, err
	}
	imp.InstanceIndex = primary.InstanceIndex
	imp.DisplayName = primary.DisplayName
	return &imp, nil
}

// ResolvePlacement checks that the section belongs to the transcript and the subsection
// to the section. A subsection without a section implies its parent section.
func ResolvePlacement(ctx context.Context, stores repository.Stores, transcriptID string, sectionID, subsectionID *string) (*string, *string, error) {
	if subsectionID != nil {
		sub, err := stores.Sections.GetSubsection(ctx, *subsectionID)
		if err != nil {
			return nil, nil, err
		}
		if sectionID == nil {
			parent := sub.SectionID
			sectionID = &parent
		} else if *sectionID != sub.SectionID {
			return nil, nil, apperrors.Validation("subsection does not belong to the section").
				WithDetails(map[string]any{"sectionId": *sectionID, "subsectionId": sub.ID})
		}
	}

	if sectionID != nil {
		section, err := stores.Sections.GetSection(ctx, *sectionID)
		if err != nil {
			return nil, nil, err
		}
		if section.TranscriptID != transcriptID {
			return nil, nil, apperrors.Validation("section does not belong to the transcript").
				WithDetails(map[string]any{"sectionId": section.ID, "transcriptId": transcriptID})
		}
	}
	return sectionID, subsectionID, nil
}

func validateRecord(in RecordInput) error {
	if strings.TrimSpace(in.TranscriptID) == "" {
		return apperrors.Validation("transcript id is required")
	}
	if textnorm.Name(in.MasterTagName) == "" {
		return apperrors.Validation("master tag name is required")
	}
	if err := ValidateRanges(in.SelectionRanges); err != nil {
		return err
	}
	for i, entry := range in.PrimaryTags {
		if entry.ID == nil && textnorm.Name(entry.Name) == "" {
			return apperrors.Validation("primary tag name or id is required").
				WithDetails(map[string]any{"index": i})
		}
		if entry.SelectionRange != nil {
			if err := ValidateRanges([]model.SelectionRange{*entry.SelectionRange}); err != nil {
				return err
			}
		}
	}
	return nil
}

// ValidateRanges checks that each range names a block and has ordered, non-negative offsets
func ValidateRanges(ranges []model.SelectionRange) error {
	for i, r := range ranges {
		switch {
		case strings.TrimSpace(r.BlockID) == "":
			return apperrors.Validation("selection range needs a block id").
				WithDetails(map[string]any{"index": i})
		case r.StartOffset < 0:
			return apperrors.Validation("selection range start offset must not be negative").
				WithDetails(map[string]any{"index": i})
		case r.EndOffset < r.StartOffset:
			return apperrors.Validation("selection range end offset must not be before start offset").
				WithDetails(map[string]any{"index": i})
		}
	}
	return nil
}
