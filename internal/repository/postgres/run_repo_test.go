package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"partsync/internal/domain"
)

func TestBuildRunWhereClause(t *testing.T) {
	clause, args := buildRunWhereClause(domain.RunFilter{})
	assert.Equal(t, "WHERE 1=1", clause)
	assert.Empty(t, args)

	clause, args = buildRunWhereClause(domain.RunFilter{
		Status:     domain.RunStatusPendingReview,
		Kind:       domain.DocumentKindPart,
		PartNumber: "100-",
	})
	assert.Equal(t, "WHERE 1=1 AND status = $1 AND kind = $2 AND part_number ILIKE $3", clause)
	assert.Equal(t, []interface{}{domain.RunStatusPendingReview, domain.DocumentKindPart, "100-%"}, args)

	clause, args = buildRunWhereClause(domain.RunFilter{PartNumber: "200"})
	assert.Equal(t, "WHERE 1=1 AND part_number ILIKE $1", clause)
	assert.Equal(t, []interface{}{"200%"}, args)
}
