package service

import (
	"context"

	"go.uber.org/zap"
)

// RelationService answers whether a client user is reachable by a controller:
// the user owns at least one project assigned to that controller.
type RelationService struct {
	projects ProjectStore
	logger   *zap.SugaredLogger
}

func NewRelationService(projects ProjectStore, logger *zap.SugaredLogger) *RelationService {
	return &RelationService{projects: projects, logger: logger}
}

// IsRelated recomputes the relation on every call; nothing is cached. A
// storage failure returns false so errors deny access instead of granting it.
func (rs *RelationService) IsRelated(ctx context.Context, userId, controllerId uint) bool {
	projects, err := rs.projects.ListByClient(ctx, nil, userId)
	if err != nil {
		// fail closed
		rs.logger.Errorf("IsRelated: failed to load projects of user %d: %v", userId, err)
		return false
	}

	for _, p := range projects {
		if p.ControllerID != nil && *p.ControllerID == controllerId {
			return true
		}
	}

	return false
}
