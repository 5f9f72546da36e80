package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestFinancialLimit_UnmarshalAcceptsStringAndNumber tests the lenient wire
// format for financial ceilings
func TestFinancialLimit_UnmarshalAcceptsStringAndNumber(t *testing.T) {
	var entry RosterEntry

	err := json.Unmarshal([]byte(`{"userId":"USR-001","financialLimitMax":"2500.50"}`), &entry)
	assert.NoError(t, err)
	assert.NotNil(t, entry.FinancialLimitMax.Float())
	assert.Equal(t, 2500.50, *entry.FinancialLimitMax.Float())

	err = json.Unmarshal([]byte(`{"userId":"USR-001","financialLimitMax":10000}`), &entry)
	assert.NoError(t, err)
	assert.Equal(t, 10000.0, *entry.FinancialLimitMax.Float())
}

// TestFinancialLimit_NonNumericDegradesToNil tests that a malformed ceiling
// coerces to nil instead of erroring
func TestFinancialLimit_NonNumericDegradesToNil(t *testing.T) {
	var entry RosterEntry

	err := json.Unmarshal([]byte(`{"userId":"USR-001","financialLimitMin":"12,000"}`), &entry)
	assert.NoError(t, err)
	assert.Nil(t, entry.FinancialLimitMin.Float())
}

// TestFinancialLimit_NilReceiver tests the absent-field case
func TestFinancialLimit_NilReceiver(t *testing.T) {
	var limit *FinancialLimit
	assert.Nil(t, limit.Float())
}

// TestTaskRosterRequest_ByRoleOrder tests the fixed R/A/C/I expansion order
func TestTaskRosterRequest_ByRoleOrder(t *testing.T) {
	roster := &TaskRosterRequest{
		Informed:    []RosterEntry{{UserID: "USR-004"}},
		Responsible: []RosterEntry{{UserID: "USR-001"}},
	}

	groups := roster.ByRole()

	assert.Len(t, groups, 4)
	assert.Equal(t, RoleResponsible, groups[0].Role)
	assert.Equal(t, RoleAccountable, groups[1].Role)
	assert.Equal(t, RoleConsulted, groups[2].Role)
	assert.Equal(t, RoleInformed, groups[3].Role)
	assert.Len(t, groups[0].Entries, 1)
	assert.Empty(t, groups[1].Entries)
}

// TestTaskRosterRequest_IsEmpty tests the empty roster detection
func TestTaskRosterRequest_IsEmpty(t *testing.T) {
	assert.True(t, (&TaskRosterRequest{}).IsEmpty())
	assert.False(t, (&TaskRosterRequest{Consulted: []RosterEntry{{UserID: "USR-003"}}}).IsEmpty())
}

// TestRACIRole_IsValid tests the closed role enumeration
func TestRACIRole_IsValid(t *testing.T) {
	assert.True(t, RoleResponsible.IsValid())
	assert.True(t, RoleInformed.IsValid())
	assert.False(t, RACIRole("X").IsValid())
	assert.False(t, RACIRole("").IsValid())
}
