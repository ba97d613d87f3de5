package api

import (
	"net/http"

	"github.com/Taichi-iskw/tagscribe/internal/service/taxonomy"
)

// GET /api/master-tags?includeClosed=
func (s *Server) handleListMasterTags(w http.ResponseWriter, r *http.Request) {
	includeClosed, err := queryBool(r, "includeClosed")
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tags, err := s.services.Taxonomy.ListMasterTags(r.Context(), includeClosed)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"masterTags": tags}, s.log)
}

// POST /api/master-tags resolves by name and creates only when absent
func (s *Server) handleCreateMasterTag(w http.ResponseWriter, r *http.Request) {
	var req masterTagRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tag, created, err := s.services.Taxonomy.ResolveOrCreateMasterTag(r.Context(), taxonomy.MasterTagInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		ForceNew:    req.ForceNew,
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(w, status, envelope{"masterTag": tag, "isNew": created}, s.log)
}

// GET /api/master-tags/{id}
func (s *Server) handleGetMasterTag(w http.ResponseWriter, r *http.Request) {
	tag, err := s.services.Taxonomy.GetMasterTag(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"masterTag": tag}, s.log)
}

// PATCH /api/master-tags/{id}
func (s *Server) handleUpdateMasterTag(w http.ResponseWriter, r *http.Request) {
	var req masterTagPatchRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tag, err := s.services.Taxonomy.UpdateMasterTag(r.Context(), pathID(r), taxonomy.MasterTagPatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
		Icon:        req.Icon,
		IsClosed:    req.IsClosed,
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"masterTag": tag}, s.log)
}

// DELETE /api/master-tags/{id}
func (s *Server) handleDeleteMasterTag(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.services.Taxonomy.DeleteMasterTag(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"deleted": deleted}, s.log)
}

// POST /api/master-tags/{id}/close
func (s *Server) handleCloseMasterTag(w http.ResponseWriter, r *http.Request) {
	tag, err := s.services.Taxonomy.CloseMasterTag(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"masterTag": tag}, s.log)
}

// POST /api/master-tags/{id}/reopen
func (s *Server) handleReopenMasterTag(w http.ResponseWriter, r *http.Request) {
	tag, err := s.services.Taxonomy.ReopenMasterTag(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"masterTag": tag}, s.log)
}

// GET /api/master-tags/{id}/branch-tags
func (s *Server) handleListBranchTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.services.Taxonomy.ListBranchTags(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"branchTags": tags}, s.log)
}

// POST /api/master-tags/{id}/branch-tags
func (s *Server) handleCreateBranchTag(w http.ResponseWriter, r *http.Request) {
	var req branchTagRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tag, err := s.services.Taxonomy.CreateBranchTag(r.Context(), pathID(r), req.Name, req.Description)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"branchTag": tag}, s.log)
}

// PATCH /api/branch-tags/{id}
func (s *Server) handleUpdateBranchTag(w http.ResponseWriter, r *http.Request) {
	var req branchTagPatchRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tag, err := s.services.Taxonomy.UpdateBranchTag(r.Context(), pathID(r), taxonomy.BranchTagPatch{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"branchTag": tag}, s.log)
}

// DELETE /api/branch-tags/{id}
func (s *Server) handleDeleteBranchTag(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.services.Taxonomy.DeleteBranchTag(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"deleted": deleted}, s.log)
}

// GET /api/master-tags/{id}/primary-tags?search=&limit=
func (s *Server) handleListPrimaryTags(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tags, err := s.services.Taxonomy.ListPrimaryTags(r.Context(), taxonomy.ListPrimaryTagsInput{
		MasterTagID: pathID(r),
		Search:      r.URL.Query().Get("search"),
		Limit:       intOr(limit, 0),
	})
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"primaryTags": tags}, s.log)
}

// POST /api/master-tags/{id}/primary-tags always creates a new instance
func (s *Server) handleCreatePrimaryTag(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tag, err := s.services.Taxonomy.CreatePrimaryTagInstance(r.Context(), pathID(r), req.Name)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"primaryTag": tag}, s.log)
}

// PATCH /api/primary-tags/{id}
func (s *Server) handleRenamePrimaryTag(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tag, err := s.services.Taxonomy.RenamePrimaryTag(r.Context(), pathID(r), req.Name)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"primaryTag": tag}, s.log)
}

// GET /api/primary-tags/{id}/secondary-tags
func (s *Server) handleListSecondaryTags(w http.ResponseWriter, r *http.Request) {
	tags, err := s.services.Taxonomy.ListSecondaryTags(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"secondaryTags": tags}, s.log)
}

// POST /api/primary-tags/{id}/secondary-tags
func (s *Server) handleCreateSecondaryTag(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tag, err := s.services.Taxonomy.CreateSecondaryTag(r.Context(), pathID(r), req.Name)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusCreated, envelope{"secondaryTag": tag}, s.log)
}

// PATCH /api/secondary-tags/{id}
func (s *Server) handleRenameSecondaryTag(w http.ResponseWriter, r *http.Request) {
	var req nameRequest
	if err := s.decode(r, &req); err != nil {
		writeError(w, r, err, s.log)
		return
	}

	tag, err := s.services.Taxonomy.RenameSecondaryTag(r.Context(), pathID(r), req.Name)
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"secondaryTag": tag}, s.log)
}

// DELETE /api/secondary-tags/{id}
func (s *Server) handleDeleteSecondaryTag(w http.ResponseWriter, r *http.Request) {
	deleted, err := s.services.Taxonomy.DeleteSecondaryTag(r.Context(), pathID(r))
	if err != nil {
		writeError(w, r, err, s.log)
		return
	}
	writeSuccess(w, http.StatusOK, envelope{"deleted": deleted}, s.log)
}
