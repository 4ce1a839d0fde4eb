package pgerr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestClassification(t *testing.T) {
	unique := &pq.Error{Code: pq.ErrorCode(pgerrcode.UniqueViolation), Constraint: "availability_product_id_date_key"}
	serialization := &pq.Error{Code: pq.ErrorCode(pgerrcode.SerializationFailure)}
	deadlock := &pq.Error{Code: pq.ErrorCode(pgerrcode.DeadlockDetected)}
	fk := &pq.Error{Code: pq.ErrorCode(pgerrcode.ForeignKeyViolation)}

	assert.True(t, IsUniqueViolation(unique))
	assert.True(t, IsUniqueViolation(fmt.Errorf("insert: %w", unique)))
	assert.Equal(t, "availability_product_id_date_key", Constraint(unique))

	assert.True(t, IsSerializationFailure(serialization))
	assert.True(t, IsSerializationFailure(deadlock))
	assert.False(t, IsSerializationFailure(unique))

	assert.True(t, IsForeignKeyViolation(fk))
	assert.False(t, IsUniqueViolation(fk))
}

func TestNonPostgresError(t *testing.T) {
	err := errors.New("connection refused")

	assert.Empty(t, Code(err))
	assert.Empty(t, Constraint(err))
	assert.False(t, IsUniqueViolation(err))
	assert.False(t, IsSerializationFailure(nil))
}
