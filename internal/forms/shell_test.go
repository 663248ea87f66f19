package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/subfolio-dev/subfolio/internal/actions"
	"github.com/subfolio-dev/subfolio/internal/types"
)

func TestCreateSuccessClearsValuesAndNavigates(t *testing.T) {
	shell := New(ModeCreate, types.WorkForm{Company: "Acme"}).WithListPath("/dashboard/s1/work")

	calls := 0
	res := shell.Submit(func() actions.Result {
		calls++
		assert.Equal(t, Submitting, shell.State)
		assert.True(t, shell.Pending())
		return actions.Result{Success: "Work experience added!"}
	})

	assert.Equal(t, 1, calls)
	assert.True(t, res.OK())
	assert.Equal(t, Succeeded, shell.State)
	assert.Equal(t, "Work experience added!", shell.Success)
	assert.Equal(t, types.WorkForm{}, shell.Values)
	assert.True(t, shell.Navigates())
	assert.Equal(t, RedirectDelay, shell.RedirectAfter)
	assert.InDelta(t, 1.5, shell.RedirectSeconds(), 0.001)
}

func TestEditSuccessKeepsValues(t *testing.T) {
	shell := New(ModeEdit, types.WorkForm{Company: "Acme"}).WithListPath("/dashboard/s1/work")

	shell.Submit(func() actions.Result { return actions.Result{Success: "Work experience updated!"} })

	assert.Equal(t, "Acme", shell.Values.Company)
	assert.True(t, shell.Navigates())
}

func TestProfileFormNeverNavigates(t *testing.T) {
	shell := New(ModeEdit, types.ProfileForm{Name: "Ada"})

	shell.Submit(func() actions.Result { return actions.Result{Success: "Profile updated!"} })

	assert.Equal(t, Succeeded, shell.State)
	assert.False(t, shell.Navigates())
	assert.Zero(t, shell.RedirectAfter)
}

func TestFailureRetainsValues(t *testing.T) {
	shell := New(ModeCreate, types.ProjectForm{Title: "Engine"}).WithListPath("/dashboard/s1/projects")

	shell.Submit(func() actions.Result {
		return actions.Result{Error: "Invalid fields!", Kind: actions.KindInvalidInput, Fields: map[string]string{"dates": "is required"}}
	})

	assert.Equal(t, Failed, shell.State)
	assert.Equal(t, "Invalid fields!", shell.Error)
	assert.Equal(t, "is required", shell.FieldError("dates"))
	assert.Equal(t, "Engine", shell.Values.Title)
	assert.False(t, shell.Navigates())

	shell.Submit(func() actions.Result { return actions.Result{Success: "Project added!"} })
	assert.Empty(t, shell.Error)
	assert.Nil(t, shell.Fields)
	assert.Equal(t, Succeeded, shell.State)
}

func TestSubmitWhilePendingIsRejected(t *testing.T) {
	shell := New(ModeCreate, types.WorkForm{})
	shell.State = Submitting

	called := false
	res := shell.Submit(func() actions.Result {
		called = true
		return actions.Result{Success: "ok"}
	})

	assert.False(t, called)
	assert.False(t, res.OK())
}

func TestFailWithoutMutation(t *testing.T) {
	shell := New(ModeCreate, types.WorkForm{Company: "Acme"})
	shell.Fail("Please set up your profile first!")

	assert.Equal(t, Failed, shell.State)
	assert.Equal(t, "Please set up your profile first!", shell.Error)
	assert.Equal(t, "Acme", shell.Values.Company)
}
