package utils

import (
	"context"

	"solar-crm/pkg/contextkeys"
	apperrors "solar-crm/pkg/errors"
	"solar-crm/pkg/types"
)

func GetSessionFromCtx(ctx context.Context) (*types.Session, error) {
	session, ok := ctx.Value(contextkeys.EmployeeKey).(*types.Session)
	if !ok || session == nil {
		return nil, apperrors.ErrUserIDNotFoundInContext
	}
	return session, nil
}

func GetEmployeeIDFromCtx(ctx context.Context) (uint64, error) {
	session, err := GetSessionFromCtx(ctx)
	if err != nil {
		return 0, err
	}
	return session.EmployeeID, nil
}
