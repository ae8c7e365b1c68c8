package main

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuestionnaireCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd(&out)
	root.SetArgs([]string{"questionnaire", "--industry", "retail", "--type", "search",
		"--total-budget", "25000", "--locations", "Toronto,Montreal", "--interests", "shopping"})
	require.NoError(t, root.Execute())

	var qn struct {
		TotalQuestions int `json:"total_questions"`
		Questions      []struct {
			Key string `json:"key"`
		} `json:"questions"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &qn))
	assert.Equal(t, len(qn.Questions), qn.TotalQuestions)

	keys := make([]string, 0, len(qn.Questions))
	for _, q := range qn.Questions {
		keys = append(keys, q.Key)
	}
	assert.Contains(t, keys, "retail_peak_season")
	assert.Contains(t, keys, "search_intent_focus")
}

func TestOptimizeRequiresResponses(t *testing.T) {
	root := newRootCmd(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"optimize"})
	assert.Error(t, root.Execute())
}
