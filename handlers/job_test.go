package handlers

import (
	"testing"

	"hr_system/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateJobDefaults(t *testing.T) {
	app, db := setupTest(t)

	resp, err := app.Test(jsonRequest("POST", "/jobs/create", map[string]interface{}{
		"title":        "Backend Developer",
		"description":  "Need an expert in Go",
		"requirements": []string{"Go", "SQL", "AWS"},
	}))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	response := decodeResponse(t, resp)
	require.True(t, response.Success)
	id := response.Data.(map[string]interface{})["id"].(string)

	var job models.Job
	require.NoError(t, db.Where("id = ?", id).First(&job).Error)
	assert.True(t, job.IsActive)
	assert.Equal(t, "Karachi", job.Location)
	assert.Equal(t, "Not Disclosed", job.SalaryRange)
	assert.Equal(t, models.StringList{"Go", "SQL", "AWS"}, job.Requirements)
	assert.False(t, job.CreatedAt.IsZero())
}

func TestListActiveJobsOnly(t *testing.T) {
	app, db := setupTest(t)

	for _, payload := range []map[string]interface{}{
		{"title": "Visible", "description": "open role"},
		{"title": "Hidden", "description": "closed role"},
	} {
		resp, err := app.Test(jsonRequest("POST", "/jobs/create", payload))
		require.NoError(t, err)
		require.Equal(t, 200, resp.StatusCode)
	}

	// Soft-hide one posting; there is no delete.
	require.NoError(t, db.Model(&models.Job{}).
		Where("title = ?", "Hidden").
		Update("is_active", false).Error)

	resp, err := app.Test(jsonRequest("GET", "/jobs/all", nil))
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
	response := decodeResponse(t, resp)

	list := response.Data.([]interface{})
	require.Len(t, list, 1)
	job := list[0].(map[string]interface{})
	assert.Equal(t, "Visible", job["title"])
	assert.Equal(t, true, job["is_active"])
}
