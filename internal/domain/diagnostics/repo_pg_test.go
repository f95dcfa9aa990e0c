package diagnostics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dval/hmis/pkg/pagination"
)

func TestListLabTestsQuery(t *testing.T) {
	requester := int64(100)
	sql, args, err := listLabTestsQuery(1, LabTestFilter{RequestedBy: &requester, Day: "2024-05-01"}, pagination.Params{}).ToSQL()
	require.NoError(t, err)

	assert.Contains(t, sql, `FROM "labtests"`)
	assert.Contains(t, sql, `"requested_by" = $2`)
	assert.Contains(t, sql, `DATE("test_date") = $3::date`)
	assert.Contains(t, sql, `ORDER BY "test_id" ASC`)
	assert.Equal(t, []interface{}{int64(1), int64(100), "2024-05-01"}, args)
}
