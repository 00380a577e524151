package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ccirone2/docx-builder/pkg/schema"
	"github.com/ccirone2/docx-builder/pkg/testsupport"
)

// scriptedAsker answers prompts from canned values and records what was asked.
type scriptedAsker struct {
	answers  map[string]string
	confirms map[string]bool
	asked    []string
}

func (a *scriptedAsker) record(msg string) { a.asked = append(a.asked, msg) }

func (a *scriptedAsker) Input(msg, def, _ string, validator func(string) error) (string, error) {
	a.record(msg)
	answer, ok := a.answers[msg]
	if !ok {
		answer = def
	}
	if validator != nil {
		if err := validator(answer); err != nil {
			return "", err
		}
	}
	return answer, nil
}

func (a *scriptedAsker) Multiline(msg, def string) (string, error) {
	a.record(msg)
	if answer, ok := a.answers[msg]; ok {
		return answer, nil
	}
	return def, nil
}

func (a *scriptedAsker) Confirm(msg string, def bool) (bool, error) {
	a.record(msg)
	if answer, ok := a.confirms[msg]; ok {
		return answer, nil
	}
	return def, nil
}

func (a *scriptedAsker) Select(msg string, options []string, def string) (string, error) {
	a.record(msg)
	if answer, ok := a.answers[msg]; ok {
		return answer, nil
	}
	if def != "" {
		return def, nil
	}
	return options[0], nil
}

func TestFillData(t *testing.T) {
	s := testsupport.MustSchema(t)

	ask := &scriptedAsker{
		answers: map[string]string{
			"Organization Name (required)": "Acme Utility",
			"Work Category (required)":     "Vegetation Management",
		},
		confirms: map[string]bool{
			"Bonding Required (required)": false,
		},
	}

	data, err := fillData(s, schema.Data{}, ask, true)
	require.NoError(t, err)

	assert.Equal(t, "Acme Utility", data["issuer_name"])
	assert.Equal(t, "Vegetation Management", data["work_category"])
	assert.Equal(t, false, data["bonding_required"])

	// Table fields are never prompted.
	for _, msg := range ask.asked {
		assert.NotContains(t, msg, "Work Items")
	}
	// bonding_amount is conditional on bonding_required=true and was skipped.
	for _, msg := range ask.asked {
		assert.NotContains(t, msg, "Bonding Amount")
	}
	// Core-only mode skips optional groups.
	for _, msg := range ask.asked {
		assert.NotContains(t, msg, "Safety Requirements")
	}
}

func TestFillData_ConditionalPrompted(t *testing.T) {
	s := testsupport.MustSchema(t)

	ask := &scriptedAsker{
		confirms: map[string]bool{
			"Bonding Required (required)": true,
		},
		answers: map[string]string{
			"Bonding Amount (required)": "100% of contract value",
		},
	}

	data, err := fillData(s, schema.Data{}, ask, true)
	require.NoError(t, err)
	assert.Equal(t, "100% of contract value", data["bonding_amount"])
}

func TestFillData_SeedBecomesDefault(t *testing.T) {
	s := testsupport.MustSchema(t)

	ask := &scriptedAsker{}
	data, err := fillData(s, testsupport.SampleData(), ask, true)
	require.NoError(t, err)

	// No scripted answers, so defaults (the seed values) flow through.
	assert.Equal(t, "Ozark Electric Cooperative", data["issuer_name"])
	assert.Equal(t, "RFQ-2026-042", data["rfq_number"])
	// Seeded values the prompts never touch survive.
	assert.NotNil(t, data["work_items"])
}

func TestFillData_CompoundSubFields(t *testing.T) {
	s := testsupport.MustSchema(t)

	ask := &scriptedAsker{
		answers: map[string]string{
			"Safety Requirements / General Safety (required)": "Hard hats always.",
		},
	}

	data, err := fillData(s, schema.Data{}, ask, false)
	require.NoError(t, err)

	sr, ok := data["safety_requirements"].(map[string]any)
	require.True(t, ok, "compound value missing: %#v", data["safety_requirements"])
	assert.Equal(t, "Hard hats always.", sr["general"])
}

func TestValidators(t *testing.T) {
	assert.NoError(t, validNumber("12.5"))
	assert.NoError(t, validNumber(""))
	assert.Error(t, validNumber("a dozen"))

	assert.NoError(t, validDate("2026-03-01"))
	assert.NoError(t, validDate(""))
	assert.Error(t, validDate("03/01/2026"))
}
