package api

import (
	"net/http"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
)

// POST /api/videos
func (s *Server) handleRegisterVideo(w http.ResponseWriter, r *http.Request) {
	var req registerVideoRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	video, err := s.services.Transcripts.RegisterVideo(r.Context(), transcript.VideoInput{
		ID:       req.ID,
		Title:    req.Title,
		MediaURL: req.MediaURL,
		Duration: req.Duration,
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"video": video}, s.log)
}

// GET /api/videos?limit=&offset=
func (s *Server) handleListVideos(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}

	videos, err := s.services.Transcripts.ListVideos(r.Context(), intOr(limit, 0), intOr(offset, 0))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"videos": videos}, s.log)
}

// GET /api/videos/{id}
func (s *Server) handleGetVideo(w http.ResponseWriter, r *http.Request) {
	video, err := s.services.Transcripts.GetVideo(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"video": video}, s.log)
}

// POST /api/videos/{id}/transcripts
func (s *Server) handleSaveTranscript(w http.ResponseWriter, r *http.Request) {
	var req saveTranscriptRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	saved, err := s.services.Transcripts.SaveTranscript(r.Context(), transcript.SaveInput{
		VideoID:  pathID(r),
		Language: req.Language,
		Type:     model.TranscriptType(req.Type),
		Name:     req.Name,
		Source: transcript.Source{
			Blocks:     req.Blocks,
			Utterances: req.Utterances,
			Words:      req.Words,
			Text:       req.Text,
		},
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"transcript": saved}, s.log)
}

// GET /api/videos/{id}/transcripts?version=
func (s *Server) handleLoadTranscript(w http.ResponseWriter, r *http.Request) {
	version, err := queryInt(r, "version")
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}

	loaded, err := s.services.Transcripts.LoadTranscript(r.Context(), pathID(r), version)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"transcript": loaded}, s.log)
}

// GET /api/videos/{id}/transcripts/versions
func (s *Server) handleListVersions(w http.ResponseWriter, r *http.Request) {
	versions, err := s.services.Transcripts.ListVersions(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"versions": versions}, s.log)
}

// GET /api/transcripts/{id}
func (s *Server) handleGetTranscript(w http.ResponseWriter, r *http.Request) {
	t, err := s.services.Transcripts.GetTranscript(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"transcript": t}, s.log)
}

// PATCH /api/transcripts/{id}
func (s *Server) handleRenameTranscript(w http.ResponseWriter, r *http.Request) {
	var req renameTranscriptRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	t, err := s.services.Transcripts.RenameTranscript(r.Context(), pathID(r), req.Name)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"transcript": t}, s.log)
}

// GET /api/transcripts/{id}/sections
func (s *Server) handleListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := s.services.Transcripts.ListSections(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"sections": sections}, s.log)
}

// POST /api/transcripts/{id}/sections
func (s *Server) handleCreateSection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	section, err := s.services.Transcripts.CreateSection(r.Context(), transcript.SectionInput{
		TranscriptID: pathID(r),
		Name:         req.Name,
		Start:        req.StartBlockIndex,
		End:          req.EndBlockIndex,
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"section": section}, s.log)
}

// PATCH /api/sections/{id}
func (s *Server) handleUpdateSection(w http.ResponseWriter, r *http.Request) {
	var req rangePatchRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	section, err := s.services.Transcripts.UpdateSection(r.Context(), pathID(r), req.toPatch())
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"section": section}, s.log)
}

// DELETE /api/sections/{id}
func (s *Server) handleDeleteSection(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.services.Transcripts.DeleteSection(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"deleted": deleted}, s.log)
}

// POST /api/sections/{id}/subsections
func (s *Server) handleCreateSubsection(w http.ResponseWriter, r *http.Request) {
	var req sectionRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	sub, err := s.services.Transcripts.CreateSubsection(r.Context(), transcript.SubsectionInput{
		SectionID: pathID(r),
		Name:      req.Name,
		Start:     req.StartBlockIndex,
		End:       req.EndBlockIndex,
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"subsection": sub}, s.log)
}

// PATCH /api/subsections/{id}
func (s *Server) handleUpdateSubsection(w http.ResponseWriter, r *http.Request) {
	var req rangePatchRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	sub, err := s.services.Transcripts.UpdateSubsection(r.Context(), pathID(r), req.toPatch())
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"subsection": sub}, s.log)
}

// DELETE /api/subsections/{id}
func (s *Server) handleDeleteSubsection(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.services.Transcripts.DeleteSubsection(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"deleted": deleted}, s.log)
}

func (req rangePatchRequest) toPatch() transcript.RangePatch {
	return transcript.RangePatch{
		Name:      req.Name,
		Start:     req.StartBlockIndex,
		End:       req.EndBlockIndex,
		ReopenEnd: req.ReopenEnd,
	}
}
