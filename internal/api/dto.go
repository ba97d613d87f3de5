package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/service/transcript"
)

// Video and transcript requests

type registerVideoRequest struct {
	ID       string  `json:"id,omitempty" validate:"omitempty,max=128"`
	Title    string  `json:"title" validate:"required,max=500"`
	MediaURL string  `json:"mediaUrl,omitempty"`
	Duration float64 `json:"duration" validate:"gte=0"`
}

type saveTranscriptRequest struct {
	Language   string                  `json:"language" validate:"required,max=16"`
	Type       string                  `json:"type,omitempty" validate:"omitempty,oneof=auto manual"`
	Name       *string                 `json:"name,omitempty"`
	Blocks     []transcript.BlockInput `json:"blocks,omitempty"`
	Utterances []transcript.Utterance  `json:"utterances,omitempty"`
	Words      []transcript.Word       `json:"words,omitempty"`
	Text       string                  `json:"text,omitempty"`
}

type renameTranscriptRequest struct {
	Name *string `json:"name"`
}

type sectionRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	StartBlockIndex int    `json:"startBlockIndex" validate:"gte=0"`
	EndBlockIndex   *int   `json:"endBlockIndex,omitempty" validate:"omitempty,gte=0"`
}

type rangePatchRequest struct {
	Name            *string `json:"name,omitempty" validate:"omitempty,max=200"`
	StartBlockIndex *int    `json:"startBlockIndex,omitempty" validate:"omitempty,gte=0"`
	EndBlockIndex   *int    `json:"endBlockIndex,omitempty" validate:"omitempty,gte=0"`
	ReopenEnd       bool    `json:"reopenEnd,omitempty"`
}

// Taxonomy requests

type masterTagRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=64"`
	ForceNew    bool    `json:"forceNew,omitempty"`
}

type masterTagPatchRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
	Color       *string `json:"color,omitempty" validate:"omitempty,hexcolor"`
	Icon        *string `json:"icon,omitempty" validate:"omitempty,max=64"`
	IsClosed    *bool   `json:"isClosed,omitempty"`
}

type branchTagRequest struct {
	Name        string  `json:"name" validate:"required,max=200"`
	Description *string `json:"description,omitempty"`
}

type branchTagPatchRequest struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Description *string `json:"description,omitempty"`
}

type nameRequest struct {
	Name string `json:"name" validate:"required,max=200"`
}

// Impression requests

type selectionRangeRequest struct {
	BlockID     string `json:"blockId" validate:"required"`
	StartOffset int    `json:"startOffset" validate:"gte=0"`
	EndOffset   int    `json:"endOffset" validate:"gtefield=StartOffset"`
}

func (r selectionRangeRequest) toModel() model.SelectionRange {
	return model.SelectionRange{BlockID: r.BlockID, StartOffset: r.StartOffset, EndOffset: r.EndOffset}
}

type primaryTagRequest struct {
	Name           string                 `json:"name,omitempty" validate:"required_without=ID,max=200"`
	ID             *string                `json:"id,omitempty"`
	Comment        *string                `json:"comment,omitempty"`
	SecondaryTags  []string               `json:"secondaryTags,omitempty" validate:"dive,required,max=200"`
	BlockID        *string                `json:"blockId,omitempty"`
	SelectedText   *string                `json:"selectedText,omitempty"`
	SelectionRange *selectionRangeRequest `json:"selectionRange,omitempty"`
}

type recordImpressionRequest struct {
	TranscriptID         string                  `json:"transcriptId" validate:"required"`
	BlockIDs             []string                `json:"blockIds,omitempty"`
	MasterTagName        string                  `json:"masterTagName" validate:"required,max=200"`
	MasterTagDescription *string                 `json:"masterTagDescription,omitempty"`
	BranchNames          []string                `json:"branchNames,omitempty" validate:"dive,max=200"`
	PrimaryTags          []primaryTagRequest     `json:"primaryTags,omitempty" validate:"dive"`
	SectionID            *string                 `json:"sectionId,omitempty"`
	SubsectionID         *string                 `json:"subsectionId,omitempty"`
	SelectedText         *string                 `json:"selectedText,omitempty"`
	SelectionRanges      []selectionRangeRequest `json:"selectionRanges,omitempty" validate:"dive"`
	Comment              *string                 `json:"comment,omitempty"`
	CreatedBy            *string                 `json:"createdBy,omitempty"`
}

type updateImpressionRequest struct {
	Comment             *string `json:"comment,omitempty"`
	NewSecondaryTagName *string `json:"newSecondaryTagName,omitempty"`
}

type relocateRequest struct {
	Action             string  `json:"action" validate:"required"`
	PrimaryTagID       string  `json:"primaryTagId,omitempty"`
	TargetMasterTagID  string  `json:"targetMasterTagId,omitempty"`
	ImpressionID       string  `json:"impressionId,omitempty"`
	TargetSectionID    *string `json:"targetSectionId,omitempty"`
	TargetSubsectionID *string `json:"targetSubsectionId,omitempty"`
}

// decode reads and validates a request body
func (s *Server) decode(r *http.Request, dst any) error {
	if err := decodeJSON(r, dst); err != nil {
		return err
	}
	return s.validator.Validate(dst)
}

func pathID(r *http.Request) string {
	return chi.URLParam(r, "id")
}
