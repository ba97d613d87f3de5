package impression

import (
	"context"

	"github.com/Taichi-iskw/tagscribe/internal/model"
	"github.com/Taichi-iskw/tagscribe/internal/repository/common"
)

// CountByMaster returns the impression count of every master tag that has at least one
func (r *impressionRepository) CountByMaster(ctx context.Context, masterTagID *string) ([]model.TagCount, error) {
	sql := `SELECT master_tag_id, count(*)
		FROM tag_impressions
		WHERE ($1::text IS NULL OR master_tag_id = $1)
		GROUP BY master_tag_id`

	rows, err := r.db.Query(ctx, sql, masterTagID)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to count impressions by master tag")
	}
	defer rows.Close()

	counts := []model.TagCount{}
	for rows.Next() {
		var count model.TagCount
		if err := rows.Scan(&count.ID, &count.Count); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan impression count")
		}
		counts = append(counts, count)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate impression counts")
	}
	return counts, nil
}

// TranscriptBreakdown counts a transcript's impressions per (master, primary) pair
func (r *impressionRepository) TranscriptBreakdown(ctx context.Context, transcriptID string, masterTagID *string) ([]model.TranscriptBreakdownRow, error) {
	sql := `SELECT i.master_tag_id, m.name, i.primary_tag_id, p.name, count(*)
		FROM tag_impressions i
		JOIN master_tags m ON m.id = i.master_tag_id
		LEFT JOIN primary_tags p ON p.id = i.primary_tag_id
		WHERE i.transcript_id = $1 AND ($2::text IS NULL OR i.master_tag_id = $2)
		GROUP BY i.master_tag_id, m.name, i.primary_tag_id, p.name
		ORDER BY count(*) DESC, m.name, p.name`

	rows, err := r.db.Query(ctx, sql, transcriptID, masterTagID)
	if err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to build transcript breakdown")
	}
	defer rows.Close()

	breakdown := []model.TranscriptBreakdownRow{}
	for rows.Next() {
		var row model.TranscriptBreakdownRow
		if err := rows.Scan(&row.MasterTagID, &row.MasterTagName, &row.PrimaryTagID, &row.PrimaryTagName, &row.ImpressionCount); err != nil {
			return nil, common.HandlePostgreSQLError(err, "failed to scan transcript breakdown")
		}
		breakdown = append(breakdown, row)
	}
	if err := rows.Err(); err != nil {
		return nil, common.HandlePostgreSQLError(err, "failed to iterate transcript breakdown")
	}
	return breakdown, nil
}
