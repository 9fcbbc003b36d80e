package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentListQuery(t *testing.T) {
	t.Run("without search", func(t *testing.T) {
		sql, args, err := studentListQuery(3, "", 0, 10).ToSql()
		require.NoError(t, err)

		assert.NotContains(t, sql, "ILIKE")
		assert.Contains(t, sql, "s.institution_id = $1")
		assert.Equal(t, []interface{}{int64(3)}, args)
	})

	t.Run("search filters name and enrollment number", func(t *testing.T) {
		sql, args, err := studentListQuery(3, "23GPTC", 10, 10).ToSql()
		require.NoError(t, err)

		assert.Contains(t, sql, "u.first_name ILIKE $2")
		assert.Contains(t, sql, "u.last_name ILIKE $3")
		assert.Contains(t, sql, "s.enrollment_no ILIKE $4")
		assert.Equal(t, []interface{}{int64(3), "%23GPTC%", "%23GPTC%", "%23GPTC%"}, args)
	})
}
