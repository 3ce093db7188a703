package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionConfValidate(t *testing.T) {
	assert.ErrorIs(t, SessionConf{}.Validate(), ErrEmptySessionSecret)
	assert.ErrorIs(t, SessionConf{Secret: "  "}.Validate(), ErrEmptySessionSecret)
	assert.NoError(t, SessionConf{Secret: "s3cret"}.Validate())
}

func TestTurnBudgetCoversEveryModelCall(t *testing.T) {
	c := ClerkConf{ModelTimeout: 15000}
	assert.Equal(t, 110*time.Second, c.TurnBudget())
	assert.Greater(t, c.TurnBudget(), 30*time.Second)

	assert.Equal(t, turnSlack, ClerkConf{}.TurnBudget())
}
