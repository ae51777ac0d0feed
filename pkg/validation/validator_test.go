package validation

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,pwd"`
}

func TestToIssuesUsesJSONFieldNames(t *testing.T) {
	Init()

	err := binding.Validator.ValidateStruct(&samplePayload{
		Email:    "not-an-email",
		Username: "ab",
		Password: "short",
	})
	require.Error(t, err)

	issues := ToIssues(err)
	byField := map[string]string{}
	for _, i := range issues {
		byField[i.Field] = i.Message
	}

	assert.Equal(t, "must be a valid email", byField["email"])
	assert.Equal(t, "must be at least 3 characters long", byField["username"])
	assert.Equal(t, "must be at least 8 characters long", byField["password"])
}

func TestToIssuesNil(t *testing.T) {
	assert.Nil(t, ToIssues(nil))
}
