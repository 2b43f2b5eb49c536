package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/sopheak-dev/agencyflow/internal/model"
)

func TestRelationService_IsRelated(t *testing.T) {
	controllerId := uint(3)
	otherControllerId := uint(4)

	tests := []struct {
		name     string
		projects []model.Project
		listErr  error
		expected bool
	}{
		{
			name: "related through a shared project",
			projects: []model.Project{
				{ClientID: 7, ControllerID: &otherControllerId},
				{ClientID: 7, ControllerID: &controllerId},
			},
			expected: true,
		},
		{
			name: "not related when no project is assigned to the controller",
			projects: []model.Project{
				{ClientID: 7, ControllerID: &otherControllerId},
				{ClientID: 7},
			},
			expected: false,
		},
		{
			name:     "not related when the user has no projects",
			projects: []model.Project{},
			expected: false,
		},
		{
			name:     "storage failure denies instead of granting",
			listErr:  errors.New("connection refused"),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProjects := new(MockProjectStore)
			if tt.listErr != nil {
				mockProjects.On("ListByClient", mock.Anything, mock.Anything, uint(7)).Return(nil, tt.listErr)
			} else {
				mockProjects.On("ListByClient", mock.Anything, mock.Anything, uint(7)).Return(tt.projects, nil)
			}

			service := NewRelationService(mockProjects, zap.NewNop().Sugar())

			assert.Equal(t, tt.expected, service.IsRelated(context.Background(), 7, controllerId))
			mockProjects.AssertExpectations(t)
		})
	}
}
