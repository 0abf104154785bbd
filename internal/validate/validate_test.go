package validate

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Link  string `validate:"omitempty,url"`
}

func TestStruct_ValidPasses(t *testing.T) {
	require.NoError(t, Struct(sample{Name: "Ada", Email: "ada@example.com"}))
}

func TestDescribe_ListsEveryField(t *testing.T) {
	err := Struct(sample{Email: "nope", Link: "::"})
	require.Error(t, err)

	msg := Describe(err)
	assert.Contains(t, msg, "Name is required")
	assert.Contains(t, msg, "Email must be a valid email")
	assert.Contains(t, msg, "Link must be a valid URL")
}

func TestDescribe_PassesThroughOtherErrors(t *testing.T) {
	assert.Equal(t, "boom", Describe(errors.New("boom")))
}

func TestVar(t *testing.T) {
	assert.NoError(t, Var("a@b.co", "email"))
	assert.Error(t, Var("ab", "email"))
}
