package handler

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionalUserID_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPresent bool
		wantID      *uint
	}{
		{name: "omitted field", body: `{}`, wantPresent: false, wantID: nil},
		{name: "explicit null clears", body: `{"assignee_id": null}`, wantPresent: true, wantID: nil},
		{name: "concrete id", body: `{"assignee_id": 42}`, wantPresent: true, wantID: uintPtr(42)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req UpdateTaskRequest
			err := json.Unmarshal([]byte(tt.body), &req)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantPresent, req.AssigneeID.Present)
			if tt.wantID == nil {
				assert.Nil(t, req.AssigneeID.ID)
			} else {
				assert.NotNil(t, req.AssigneeID.ID)
				assert.Equal(t, *tt.wantID, *req.AssigneeID.ID)
			}
		})
	}
}

func TestOptionalUserID_UnmarshalJSON_Invalid(t *testing.T) {
	var req UpdateTaskRequest
	err := json.Unmarshal([]byte(`{"assignee_id": "twenty"}`), &req)
	assert.Error(t, err)
}

func uintPtr(v uint) *uint { return &v }
