package repotest

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/stretchr/testify/mock"
)

// VideoRepository mocks video.Repository
type VideoRepository struct{ mock.Mock }

func (m *VideoRepository) Create(ctx context.Context, video *model.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *VideoRepository) GetByID(ctx context.Context, id string) (*model.Video, error) {
	args := m.Called(ctx, id)
	video, _ := args.Get(0).(*model.Video)
	return video, args.Error(1)
}

func (m *VideoRepository) List(ctx context.Context, limit, offset int) ([]*model.Video, error) {
	args := m.Called(ctx, limit, offset)
	videos, _ := args.Get(0).([]*model.Video)
	return videos, args.Error(1)
}

func (m *VideoRepository) Update(ctx context.Context, video *model.Video) error {
	return m.Called(ctx, video).Error(0)
}

func (m *VideoRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *VideoRepository) LockForUpdate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// TranscriptRepository mocks transcript.Repository
type TranscriptRepository struct{ mock.Mock }

func (m *TranscriptRepository) Create(ctx context.Context, transcript *model.Transcript) error {
	return m.Called(ctx, transcript).Error(0)
}

func (m *TranscriptRepository) NextVersion(ctx context.Context, videoID string) (int, error) {
	args := m.Called(ctx, videoID)
	return args.Int(0), args.Error(1)
}

func (m *TranscriptRepository) GetByID(ctx context.Context, id string) (*model.Transcript, error) {
	args := m.Called(ctx, id)
	transcript, _ := args.Get(0).(*model.Transcript)
	return transcript, args.Error(1)
}

func (m *TranscriptRepository) GetByVersion(ctx context.Context, videoID string, version int) (*model.Transcript, error) {
	args := m.Called(ctx, videoID, version)
	transcript, _ := args.Get(0).(*model.Transcript)
	return transcript, args.Error(1)
}

func (m *TranscriptRepository) GetLatest(ctx context.Context, videoID string) (*model.Transcript, error) {
	args := m.Called(ctx, videoID)
	transcript, _ := args.Get(0).(*model.Transcript)
	return transcript, args.Error(1)
}

func (m *TranscriptRepository) ListByVideo(ctx context.Context, videoID string) ([]*model.Transcript, error) {
	args := m.Called(ctx, videoID)
	transcripts, _ := args.Get(0).([]*model.Transcript)
	return transcripts, args.Error(1)
}

func (m *TranscriptRepository) UpdateName(ctx context.Context, id string, name *string) error {
	return m.Called(ctx, id, name).Error(0)
}

// BlockRepository mocks transcript.BlockRepository
type BlockRepository struct{ mock.Mock }

func (m *BlockRepository) CreateBatch(ctx context.Context, blocks []*model.TranscriptBlock) error {
	return m.Called(ctx, blocks).Error(0)
}

func (m *BlockRepository) GetByTranscriptID(ctx context.Context, transcriptID string) ([]*model.TranscriptBlock, error) {
	args := m.Called(ctx, transcriptID)
	blocks, _ := args.Get(0).([]*model.TranscriptBlock)
	return blocks, args.Error(1)
}

func (m *BlockRepository) Count(ctx context.Context, transcriptID string) (int, error) {
	args := m.Called(ctx, transcriptID)
	return args.Int(0), args.Error(1)
}

// SectionRepository mocks section.Repository
type SectionRepository struct{ mock.Mock }

func (m *SectionRepository) CreateSection(ctx context.Context, section *model.Section) error {
	return m.Called(ctx, section).Error(0)
}

func (m *SectionRepository) GetSection(ctx context.Context, id string) (*model.Section, error) {
	args := m.Called(ctx, id)
	section, _ := args.Get(0).(*model.Section)
	return section, args.Error(1)
}

func (m *SectionRepository) FindSectionByName(ctx context.Context, transcriptID, name string) (*model.Section, error) {
	args := m.Called(ctx, transcriptID, name)
	section, _ := args.Get(0).(*model.Section)
	return section, args.Error(1)
}

func (m *SectionRepository) ListSections(ctx context.Context, transcriptID string) ([]*model.Section, error) {
	args := m.Called(ctx, transcriptID)
	sections, _ := args.Get(0).([]*model.Section)
	return sections, args.Error(1)
}

func (m *SectionRepository) UpdateSection(ctx context.Context, section *model.Section) error {
	return m.Called(ctx, section).Error(0)
}

func (m *SectionRepository) DeleteSection(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *SectionRepository) CreateSubsection(ctx context.Context, subsection *model.Subsection) error {
	return m.Called(ctx, subsection).Error(0)
}

func (m *SectionRepository) GetSubsection(ctx context.Context, id string) (*model.Subsection, error) {
	args := m.Called(ctx, id)
	subsection, _ := args.Get(0).(*model.Subsection)
	return subsection, args.Error(1)
}

func (m *SectionRepository) FindSubsectionByName(ctx context.Context, sectionID, name string) (*model.Subsection, error) {
	args := m.Called(ctx, sectionID, name)
	subsection, _ := args.Get(0).(*model.Subsection)
	return subsection, args.Error(1)
}

func (m *SectionRepository) ListSubsections(ctx context.Context, sectionID string) ([]*model.Subsection, error) {
	args := m.Called(ctx, sectionID)
	subsections, _ := args.Get(0).([]*model.Subsection)
	return subsections, args.Error(1)
}

func (m *SectionRepository) ListSubsectionsByTranscript(ctx context.Context, transcriptID string) ([]*model.Subsection, error) {
	args := m.Called(ctx, transcriptID)
	subsections, _ := args.Get(0).([]*model.Subsection)
	return subsections, args.Error(1)
}

func (m *SectionRepository) UpdateSubsection(ctx context.Context, subsection *model.Subsection) error {
	return m.Called(ctx, subsection).Error(0)
}

func (m *SectionRepository) DeleteSubsection(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// TaxonomyRepository mocks taxonomy.Repository
type TaxonomyRepository struct{ mock.Mock }

func (m *TaxonomyRepository) CreateMasterTag(ctx context.Context, tag *model.MasterTag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TaxonomyRepository) GetMasterTag(ctx context.Context, id string) (*model.MasterTag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*model.MasterTag)
	return tag, args.Error(1)
}

func (m *TaxonomyRepository) FindMasterTagByName(ctx context.Context, name string) (*model.MasterTag, error) {
	args := m.Called(ctx, name)
	tag, _ := args.Get(0).(*model.MasterTag)
	return tag, args.Error(1)
}

func (m *TaxonomyRepository) ListMasterTags(ctx context.Context, includeClosed bool) ([]*model.MasterTag, error) {
	args := m.Called(ctx, includeClosed)
	tags, _ := args.Get(0).([]*model.MasterTag)
	return tags, args.Error(1)
}

func (m *TaxonomyRepository) ListMasterTagsByIDs(ctx context.Context, ids []string) ([]*model.MasterTag, error) {
	args := m.Called(ctx, ids)
	tags, _ := args.Get(0).([]*model.MasterTag)
	return tags, args.Error(1)
}

func (m *TaxonomyRepository) UpdateMasterTag(ctx context.Context, tag *model.MasterTag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TaxonomyRepository) DeleteMasterTag(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *TaxonomyRepository) CreateBranchTag(ctx context.Context, tag *model.BranchTag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TaxonomyRepository) GetBranchTag(ctx context.Context, id string) (*model.BranchTag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*model.BranchTag)
	return tag, args.Error(1)
}

func (m *TaxonomyRepository) FindBranchTagByName(ctx context.Context, masterTagID, name string) (*model.BranchTag, error) {
	args := m.Called(ctx, masterTagID, name)
	tag, _ := args.Get(0).(*model.BranchTag)
	return tag, args.Error(1)
}

func (m *TaxonomyRepository) ListBranchTags(ctx context.Context, masterTagIDs []string) ([]*model.BranchTag, error) {
	args := m.Called(ctx, masterTagIDs)
	tags, _ := args.Get(0).([]*model.BranchTag)
	return tags, args.Error(1)
}

func (m *TaxonomyRepository) UpdateBranchTag(ctx context.Context, tag *model.BranchTag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TaxonomyRepository) DeleteBranchTag(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *TaxonomyRepository) CreatePrimaryTag(ctx context.Context, tag *model.PrimaryTag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TaxonomyRepository) GetPrimaryTag(ctx context.Context, id string) (*model.PrimaryTag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*model.PrimaryTag)
	return tag, args.Error(1)
}

func (m *TaxonomyRepository) ListPrimaryTags(ctx context.Context, masterTagIDs []string) ([]*model.PrimaryTag, error) {
	args := m.Called(ctx, masterTagIDs)
	tags, _ := args.Get(0).([]*model.PrimaryTag)
	return tags, args.Error(1)
}

func (m *TaxonomyRepository) ListPrimaryTagsByIDs(ctx context.Context, ids []string) ([]*model.PrimaryTag, error) {
	args := m.Called(ctx, ids)
	tags, _ := args.Get(0).([]*model.PrimaryTag)
	return tags, args.Error(1)
}

func (m *TaxonomyRepository) CountInstancesUpTo(ctx context.Context, tag *model.PrimaryTag) (int, error) {
	args := m.Called(ctx, tag)
	return args.Int(0), args.Error(1)
}

func (m *TaxonomyRepository) RenamePrimaryTag(ctx context.Context, id, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *TaxonomyRepository) MovePrimaryTag(ctx context.Context, id, masterTagID string) error {
	return m.Called(ctx, id, masterTagID).Error(0)
}

func (m *TaxonomyRepository) CreateSecondaryTag(ctx context.Context, tag *model.SecondaryTag) error {
	return m.Called(ctx, tag).Error(0)
}

func (m *TaxonomyRepository) GetSecondaryTag(ctx context.Context, id string) (*model.SecondaryTag, error) {
	args := m.Called(ctx, id)
	tag, _ := args.Get(0).(*model.SecondaryTag)
	return tag, args.Error(1)
}

func (m *TaxonomyRepository) ListSecondaryTags(ctx context.Context, primaryTagIDs []string) ([]*model.SecondaryTag, error) {
	args := m.Called(ctx, primaryTagIDs)
	tags, _ := args.Get(0).([]*model.SecondaryTag)
	return tags, args.Error(1)
}

func (m *TaxonomyRepository) ListSecondaryTagsByIDs(ctx context.Context, ids []string) ([]*model.SecondaryTag, error) {
	args := m.Called(ctx, ids)
	tags, _ := args.Get(0).([]*model.SecondaryTag)
	return tags, args.Error(1)
}

func (m *TaxonomyRepository) RenameSecondaryTag(ctx context.Context, id, name string) error {
	return m.Called(ctx, id, name).Error(0)
}

func (m *TaxonomyRepository) DeleteSecondaryTag(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

// ImpressionRepository mocks impression.Repository
type ImpressionRepository struct{ mock.Mock }

func (m *ImpressionRepository) Create(ctx context.Context, impression *model.TagImpression) error {
	return m.Called(ctx, impression).Error(0)
}

func (m *ImpressionRepository) GetByID(ctx context.Context, id string) (*model.TagImpression, error) {
	args := m.Called(ctx, id)
	impression, _ := args.Get(0).(*model.TagImpression)
	return impression, args.Error(1)
}

func (m *ImpressionRepository) ListByTranscript(ctx context.Context, transcriptID string) ([]*model.TagImpression, error) {
	args := m.Called(ctx, transcriptID)
	impressions, _ := args.Get(0).([]*model.TagImpression)
	return impressions, args.Error(1)
}

func (m *ImpressionRepository) Delete(ctx context.Context, id string) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *ImpressionRepository) UpdateComment(ctx context.Context, id string, comment *string) error {
	return m.Called(ctx, id, comment).Error(0)
}

func (m *ImpressionRepository) AppendSecondaryTag(ctx context.Context, id, secondaryTagID string) error {
	return m.Called(ctx, id, secondaryTagID).Error(0)
}

func (m *ImpressionRepository) SetSection(ctx context.Context, id string, sectionID, subsectionID *string) error {
	return m.Called(ctx, id, sectionID, subsectionID).Error(0)
}

func (m *ImpressionRepository) ReassignMaster(ctx context.Context, primaryTagID, masterTagID string) (int64, error) {
	args := m.Called(ctx, primaryTagID, masterTagID)
	moved, _ := args.Get(0).(int64)
	return moved, args.Error(1)
}

func (m *ImpressionRepository) CountByMaster(ctx context.Context, masterTagID *string) ([]model.TagCount, error) {
	args := m.Called(ctx, masterTagID)
	counts, _ := args.Get(0).([]model.TagCount)
	return counts, args.Error(1)
}

func (m *ImpressionRepository) TranscriptBreakdown(ctx context.Context, transcriptID string, masterTagID *string) ([]model.TranscriptBreakdownRow, error) {
	args := m.Called(ctx, transcriptID, masterTagID)
	rows, _ := args.Get(0).([]model.TranscriptBreakdownRow)
	return rows, args.Error(1)
}
