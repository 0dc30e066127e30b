package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Критичным считается активное оборудование с открытой заявкой приоритета
// 4 и выше, а не только максимального.
func TestCriticalEquipmentBuilder(t *testing.T) {
	query, args, err := criticalEquipmentBuilder().ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "COUNT(DISTINCT equipment.id)")
	assert.Contains(t, query, "equipment.status = $1")
	assert.Contains(t, query, "maintenance_requests.priority >= $2")
	assert.Contains(t, query, "maintenance_requests.status IN ($3,$4)")

	require.Len(t, args, 4)
	assert.Equal(t, 4, args[1].(int))
}
