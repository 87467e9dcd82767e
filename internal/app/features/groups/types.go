// internal/app/features/groups/types.go
package groups

import "github.com/dalemusser/huddle/internal/domain/models"

// createRequest is the body of POST /groups.
type createRequest struct {
	CreatedBy string `json:"created_by"`
	models.GroupInput
}

type createResponse struct {
	ID string `json:"id"`
}

type listResponse struct {
	Groups []models.Group `json:"groups"`
}
