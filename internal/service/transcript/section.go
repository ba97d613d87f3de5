package transcript

import (
	"context"

	"github.com/google/uuid"

	apperrors "github.com/Taichi-iskw/tagscribe/internal/errors"
	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository"
	"github.com/Taichi-iskw/tagscribe/internal/textnorm"
)

// CreateSection adds a named block range to a transcript
func (s *service) CreateSection(ctx context.Context, in SectionInput) (*model.Section, error) {
	name := textnorm.Name(in.Name)
	if name == "" {
		return nil, apperrors.Validation("section name is required")
	}

	var section *model.Section
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		if _, err := stores.Transcripts.GetByID(ctx, in.TranscriptID); err != nil {
			return err
		}
		if err := checkRange(ctx, stores, in.TranscriptID, in.Start, in.End); err != nil {
			return err
		}

		existing, err := stores.Sections.FindSectionByName(ctx, in.TranscriptID, name)
		if err == nil {
			return sectionConflict(existing.ID, existing.Name)
		}
		if !apperrors.HasCode(err, apperrors.CodeNotFound) {
			return err
		}

		section = &model.Section{
			ID:              uuid.NewString(),
			TranscriptID:    in.TranscriptID,
			Name:            name,
			StartBlockIndex: in.Start,
			EndBlockIndex:   in.End,
			Subsections:     []*model.Subsection{},
		}
		return stores.Sections.CreateSection(ctx, section)
	})
	if err != nil {
		return nil, err
	}

	s.log.Info("section created", "id", section.ID, "transcript_id", section.TranscriptID, "name", section.Name)
	return section, nil
}

// ListSections returns a transcript's sections with nested subsections
func (s *service) ListSections(ctx context.Context, transcriptID string) ([]*model.Section, error) {
	if _, err := s.stores.Transcripts.GetByID(ctx, transcriptID); err != nil {
		return nil, err
	}
	return LoadSections(ctx, s.stores, transcriptID)
}

// UpdateSection renames the section or changes its range. Setting End closes an open range.
func (s *service) UpdateSection(ctx context.Context, id string, patch RangePatch) (*model.Section, error) {
	var section *model.Section
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		current, err := stores.Sections.GetSection(ctx, id)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			name := textnorm.Name(*patch.Name)
			if name == "" {
				return apperrors.Validation("section name is required")
			}
			other, err := stores.Sections.FindSectionByName(ctx, current.TranscriptID, name)
			switch {
			case err == nil && other.ID != current.ID:
				return sectionConflict(other.ID, other.Name)
			case err != nil && !apperrors.HasCode(err, apperrors.CodeNotFound):
				return err
			}

			subsections, err := stores.Sections.ListSubsections(ctx, current.ID)
			if err != nil {
				return err
			}
			for _, sub := range subsections {
				if textnorm.EqualFold(sub.Name, name) {
					return apperrors.Validation("section name must differ from its subsection names").
						WithDetails(map[string]any{"subsectionId": sub.ID, "name": sub.Name})
				}
			}
			current.Name = name
		}

		start, end := applyRange(current.StartBlockIndex, current.EndBlockIndex, patch)
		if err := checkRange(ctx, stores, current.TranscriptID, start, end); err != nil {
			return err
		}
		current.StartBlockIndex, current.EndBlockIndex = start, end

		if err := stores.Sections.UpdateSection(ctx, current); err != nil {
			return err
		}
		section = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection removes a section and its subsections. Impressions in it are detached.
func (s *service) DeleteSection(ctx context.Context, id string) (bool, error) {
	deleted, err := s.stores.Sections.DeleteSection(ctx, id)
	if err != nil {
		return false, err
	}
	if deleted {
		s.log.Info("section deleted", "id", id)
	}
	return deleted, nil
}

// CreateSubsection adds a subsection whose name differs from its parent section's
func (s *service) CreateSubsection(ctx context.Context, in SubsectionInput) (*model.Subsection, error) {
	name := textnorm.Name(in.Name)
	if name == "" {
		return nil, apperrors.Validation("subsection name is required")
	}

	var subsection *model.Subsection
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		parent, err := stores.Sections.GetSection(ctx, in.SectionID)
		if err != nil {
			return err
		}
		if textnorm.EqualFold(parent.Name, name) {
			return parentCollision(parent)
		}
		if err := checkRange(ctx, stores, parent.TranscriptID, in.Start, in.End); err != nil {
			return err
		}

		existing, err := stores.Sections.FindSubsectionByName(ctx, parent.ID, name)
		if err == nil {
			return subsectionConflict(existing.ID, existing.Name)
		}
		if !apperrors.HasCode(err, apperrors.CodeNotFound) {
			return err
		}

		subsection = &model.Subsection{
			ID:              uuid.NewString(),
			SectionID:       parent.ID,
			Name:            name,
			StartBlockIndex: in.Start,
			EndBlockIndex:   in.End,
		}
		return stores.Sections.CreateSubsection(ctx, subsection)
	})
	if err != nil {
		return nil, err
	}
	return subsection, nil
}

// UpdateSubsection renames the subsection or changes its range
func (s *service) UpdateSubsection(ctx context.Context, id string, patch RangePatch) (*model.Subsection, error) {
	var subsection *model.Subsection
	err := s.tx.InTx(ctx, func(stores repository.Stores) error {
		current, err := stores.Sections.GetSubsection(ctx, id)
		if err != nil {
			return err
		}
		parent, err := stores.Sections.GetSection(ctx, current.SectionID)
		if err != nil {
			return err
		}

		if patch.Name != nil {
			name := textnorm.Name(*patch.Name)
			if name == "" {
				return apperrors.Validation("subsection name is required")
			}
			if textnorm.EqualFold(parent.Name, name) {
				return parentCollision(parent)
			}
			other, err := stores.Sections.FindSubsectionByName(ctx, parent.ID, name)
			switch {
			case err == nil && other.ID != current.ID:
				return subsectionConflict(other.ID, other.Name)
			case err != nil && !apperrors.HasCode(err, apperrors.CodeNotFound):
				return err
			}
			current.Name = name
		}

		start, end := applyRange(current.StartBlockIndex, current.EndBlockIndex, patch)
		if err := checkRange(ctx, stores, parent.TranscriptID, start, end); err != nil {
			return err
		}
		current.StartBlockIndex, current.EndBlockIndex = start, end

		if err := stores.Sections.UpdateSubsection(ctx, current); err != nil {
			return err
		}
		subsection = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return subsection, nil
}

// DeleteSubsection removes a subsection
func (s *service) DeleteSubsection(ctx context.Context, id string) (bool, error) {
	return s.stores.Sections.DeleteSubsection(ctx, id)
}

// LoadSections returns the transcript's sections, each with its subsections
func LoadSections(ctx context.Context, stores repository.Stores, transcriptID string) ([]*model.Section, error) {
	sections, err := stores.Sections.ListSections(ctx, transcriptID)
	if err != nil {
		return nil, err
	}
	subsections, err := stores.Sections.ListSubsectionsByTranscript(ctx, transcriptID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Section, len(sections))
	for _, section := range sections {
		section.Subsections = []*model.Subsection{}
		byID[section.ID] = section
	}
	for _, sub := range subsections {
		if parent, ok := byID[sub.SectionID]; ok {
			parent.Subsections = append(parent.Subsections, sub)
		}
	}
	return sections, nil
}

// checkRange validates block indexes against the transcript's block count
func checkRange(ctx context.Context, stores repository.Stores, transcriptID string, start int, end *int) error {
	if start < 0 {
		return apperrors.Validation("start block index must not be negative")
	}
	if end != nil && *end < start {
		return apperrors.Validation("end block index must not be before start block index")
	}

	count, err := stores.Blocks.Count(ctx, transcriptID)
	if err != nil {
		return err
	}
	if start >= count || (end != nil && *end >= count) {
		return apperrors.Validation("block index out of range").
			WithDetails(map[string]any{"blockCount": count})
	}
	return nil
}

func applyRange(start int, end *int, patch RangePatch) (int, *int) {
	if patch.Start != nil {
		start = *patch.Start
	}
	switch {
	case patch.ReopenEnd:
		end = nil
	case patch.End != nil:
		v := *patch.End
		end = &v
	}
	return start, end
}

func sectionConflict(id, name string) error {
	return apperrors.New(apperrors.CodeConflict, "section with this name already exists in the transcript").
		WithDetails(map[string]any{"id": id, "name": name})
}

func subsectionConflict(id, name string) error {
	return apperrors.New(apperrors.CodeConflict, "subsection with this name already exists in the section").
		WithDetails(map[string]any{"id": id, "name": name})
}

func parentCollision(parent *model.Section) error {
	return apperrors.Validation("subsection name must differ from its parent section name").
		WithDetails(map[string]any{"sectionId": parent.ID, "name": parent.Name})
}
