package api

import (
	"net/http"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/analytics"
	"github.com/Taichi-iskw/tagscribe/internal/service/impression"
	"github.com/Taichi-iskw/tagscribe/internal/service/relocation"
)

// POST /api/impressions
func (s *Server) handleRecordImpression(w http.ResponseWriter, r *http.Request) {
	var req recordImpressionRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	result, err := s.services.Impressions.RecordImpression(r.Context(), req.toInput())
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{
		"masterTag":       result.MasterTag,
		"isNewMasterTag":  result.IsNewMasterTag,
		"masterTagClosed": result.MasterTagClosed,
		"branchTags":      result.BranchTags,
		"impressions":     result.Impressions,
	}, s.log)
}

// GET /api/impressions/{id}
func (s *Server) handleGetImpression(w http.ResponseWriter, r *http.Request) {
	imp, err := s.services.Impressions.GetImpression(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"impression": imp}, s.log)
}

// PATCH /api/impressions/{id}
func (s *Server) handleUpdateImpression(w http.ResponseWriter, r *http.Request) {
	var req updateImpressionRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	imp, err := s.services.Impressions.UpdateImpression(r.Context(), pathID(r), impression.UpdateInput{
		Comment:             req.Comment,
		NewSecondaryTagName: req.NewSecondaryTagName,
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"impression": imp}, s.log)
}

// DELETE /api/impressions/{id} never returns 404
func (s *Server) handleDeleteImpression(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.Impressions.DeleteImpression(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{
		"deleted":        result.Deleted,
		"alreadyDeleted": result.AlreadyDeleted,
	}, s.log)
}

// POST /api/relocations
func (s *Server) handleRelocate(w http.ResponseWriter, r *http.Request) {
	var req relocateRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	result, err := s.services.Relocation.Relocate(r.Context(), relocation.Request{
		Action:             relocation.Action(req.Action),
		PrimaryTagID:       req.PrimaryTagID,
		TargetMasterTagID:  req.TargetMasterTagID,
		ImpressionID:       req.ImpressionID,
		TargetSectionID:    req.TargetSectionID,
		TargetSubsectionID: req.TargetSubsectionID,
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"result": result}, s.log)
}

// GET /api/transcripts/{id}/tags
func (s *Server) handleLoadTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.services.Analytics.LoadTagsForTranscript(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{
		"groups":      tags.Groups,
		"impressions": tags.Impressions,
		"sections":    tags.Sections,
	}, s.log)
}

// GET /api/analytics?transcriptId=&masterTagId=
func (s *Server) handleAnalytics(w http.ResponseWriter, r *http.Request) {
	result, err := s.services.Analytics.GetAnalytics(r.Context(), analytics.Filter{
		TranscriptID: queryString(r, "transcriptId"),
		MasterTagID:  queryString(r, "masterTagId"),
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"analytics": result}, s.log)
}

func (req recordImpressionRequest) toInput() impression.RecordInput {
	in := impression.RecordInput{
		TranscriptID:         req.TranscriptID,
		BlockIDs:             req.BlockIDs,
		MasterTagName:        req.MasterTagName,
		MasterTagDescription: req.MasterTagDescription,
		BranchNames:          req.BranchNames,
		SectionID:            req.SectionID,
		SubsectionID:         req.SubsectionID,
		SelectedText:         req.SelectedText,
		Comment:              req.Comment,
		CreatedBy:            req.CreatedBy,
		SelectionRanges:      make([]model.SelectionRange, 0, len(req.SelectionRanges)),
		PrimaryTags:          make([]impression.PrimaryTagInput, 0, len(req.PrimaryTags)),
	}
	if in.BlockIDs == nil {
		in.BlockIDs = []string{}
	}
	for _, rng := range req.SelectionRanges {
		in.SelectionRanges = append(in.SelectionRanges, rng.toModel())
	}
	for _, p := range req.PrimaryTags {
		entry := impression.PrimaryTagInput{
			Name:          p.Name,
			ID:            p.ID,
			Comment:       p.Comment,
			SecondaryTags: p.SecondaryTags,
			BlockID:       p.BlockID,
			SelectedText:  p.SelectedText,
		}
		if p.SelectionRange != nil {
			rng := p.SelectionRange.toModel()
			entry.SelectionRange = &rng
		}
		in.PrimaryTags = append(in.PrimaryTags, entry)
	}
	return in
}
