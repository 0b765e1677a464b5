package service

import (
	"context"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/parfumdelite/backend/internal/models"
	"github.com/parfumdelite/backend/internal/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestAdminService_DeleteUser(t *testing.T) {
	superAdmin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true, IsSuperAdmin: true}
	admin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true}

	t.Run("super_admin_target_is_never_deleted", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetID := primitive.NewObjectID()
		target := &models.User{ID: targetID, IsAdmin: true, IsSuperAdmin: true}

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().GetUserByID(gomock.Any(), targetID).Return(target, nil)
		// the account must stay present, the store delete is never reached
		users.EXPECT().DeleteUser(gomock.Any(), gomock.Any()).Times(0)

		svc := NewAdminService(users, nil)

		// even a super admin actor is denied
		err := svc.DeleteUser(context.Background(), superAdmin, targetID)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("admin_deletes_regular_user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetID := primitive.NewObjectID()
		target := &models.User{ID: targetID}

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().GetUserByID(gomock.Any(), targetID).Return(target, nil)
		users.EXPECT().DeleteUser(gomock.Any(), targetID).Return(nil)

		svc := NewAdminService(users, nil)

		err := svc.DeleteUser(context.Background(), admin, targetID)
		assert.NoError(t, err)
	})

	t.Run("missing_target", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetID := primitive.NewObjectID()

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().GetUserByID(gomock.Any(), targetID).Return(nil, models.ErrDataNotFound)

		svc := NewAdminService(users, nil)

		err := svc.DeleteUser(context.Background(), admin, targetID)
		assert.ErrorIs(t, err, models.ErrDataNotFound)
	})
}

func TestAdminService_CreateUser(t *testing.T) {
	superAdmin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true, IsSuperAdmin: true}
	admin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true}

	req := CreateUserRequest{
		Username:     "newSA",
		Email:        "newSA@test.com",
		Password:     "ThisIsAStrongPassword123!",
		IsSuperAdmin: true,
	}

	t.Run("admin_cannot_create_super_admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		users := mocks.NewMockUserRepository(ctrl)
		// all-or-nothing: nothing is persisted on denial
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

		svc := NewAdminService(users, nil)

		_, err := svc.CreateUser(context.Background(), admin, req)
		assert.ErrorIs(t, err, models.ErrForbidden)
	})

	t.Run("super_admin_creates_super_admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		var persisted *models.User
		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, u *models.User) (*models.User, error) {
				persisted = u
				return u, nil
			})

		svc := NewAdminService(users, nil)

		created, err := svc.CreateUser(context.Background(), superAdmin, req)
		require.NoError(t, err)

		assert.True(t, created.IsSuperAdmin)
		// super admin implies admin
		assert.True(t, created.IsAdmin)
		require.NotNil(t, persisted)
		assert.NotEmpty(t, persisted.PasswordHash)
		assert.NotEqual(t, req.Password, persisted.PasswordHash)
	})

	t.Run("weak_password_rejected", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Times(0)

		svc := NewAdminService(users, nil)

		weak := CreateUserRequest{Username: "u", Email: "u@test.com", Password: "short"}
		_, err := svc.CreateUser(context.Background(), superAdmin, weak)
		assert.ErrorIs(t, err, models.ErrValidation)
	})
}

func TestAdminService_UpdateUserRole(t *testing.T) {
	superAdmin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true, IsSuperAdmin: true}
	admin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true}

	t.Run("admin_cannot_suspend_super_admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetID := primitive.NewObjectID()
		target := &models.User{ID: targetID, IsAdmin: true, IsSuperAdmin: true}

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().GetUserByID(gomock.Any(), targetID).Return(target, nil)
		users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Times(0)

		svc := NewAdminService(users, nil)

		_, err := svc.UpdateUserRole(context.Background(), admin, targetID,
			models.RoleUpdate{IsSuspended: boolPtr(true)})
		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.False(t, target.IsSuspended)
	})

	t.Run("super_admin_suspends_super_admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetID := primitive.NewObjectID()
		target := &models.User{ID: targetID, IsAdmin: true, IsSuperAdmin: true}

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().GetUserByID(gomock.Any(), targetID).Return(target, nil)
		users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		svc := NewAdminService(users, nil)

		updated, err := svc.UpdateUserRole(context.Background(), superAdmin, targetID,
			models.RoleUpdate{IsSuspended: boolPtr(true)})
		require.NoError(t, err)
		assert.True(t, updated.IsSuspended)
	})

	t.Run("admin_cannot_promote_to_super_admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetID := primitive.NewObjectID()
		target := &models.User{ID: targetID}

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().GetUserByID(gomock.Any(), targetID).Return(target, nil)
		users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Times(0)

		svc := NewAdminService(users, nil)

		_, err := svc.UpdateUserRole(context.Background(), admin, targetID,
			models.RoleUpdate{IsSuperAdmin: boolPtr(true)})
		assert.ErrorIs(t, err, models.ErrForbidden)
		assert.False(t, target.IsSuperAdmin)
	})

	t.Run("super_admin_promotes_regular_user", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetID := primitive.NewObjectID()
		target := &models.User{ID: targetID}

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().GetUserByID(gomock.Any(), targetID).Return(target, nil)
		users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		svc := NewAdminService(users, nil)

		updated, err := svc.UpdateUserRole(context.Background(), superAdmin, targetID,
			models.RoleUpdate{IsSuperAdmin: boolPtr(true)})
		require.NoError(t, err)

		assert.True(t, updated.IsSuperAdmin)
		// implicit
		assert.True(t, updated.IsAdmin)
	})

	t.Run("admin_flag_not_clearable_on_super_admin", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		targetID := primitive.NewObjectID()
		target := &models.User{ID: targetID, IsAdmin: true, IsSuperAdmin: true}

		users := mocks.NewMockUserRepository(ctrl)
		users.EXPECT().GetUserByID(gomock.Any(), targetID).Return(target, nil)
		users.EXPECT().UpdateUser(gomock.Any(), gomock.Any()).Return(nil)

		svc := NewAdminService(users, nil)

		updated, err := svc.UpdateUserRole(context.Background(), superAdmin, targetID,
			models.RoleUpdate{IsAdmin: boolPtr(false)})
		require.NoError(t, err)

		// isSuperAdmin still implies isAdmin
		assert.True(t, updated.IsSuperAdmin)
		assert.True(t, updated.IsAdmin)
	})
}

func TestAdminService_ActiveDeliveries(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	admin := &models.User{ID: primitive.NewObjectID(), IsAdmin: true}

	customerID := primitive.NewObjectID()
	driverID := primitive.NewObjectID()

	orders := mocks.NewMockOrderRepository(ctrl)
	orders.EXPECT().ActiveDeliveries(gomock.Any()).Return([]models.Order{
		{ID: primitive.NewObjectID(), UserID: customerID, DriverID: &driverID, Status: models.OrderStatusOutForDelivery},
		{ID: primitive.NewObjectID(), UserID: customerID, Status: models.OrderStatusReadyForPickup},
	}, nil)

	users := mocks.NewMockUserRepository(ctrl)
	users.EXPECT().GetUsersByIDs(gomock.Any(), gomock.Any()).Return(map[primitive.ObjectID]models.User{
		customerID: {ID: customerID, Username: "customer", Email: "customer@test.com"},
		driverID:   {ID: driverID, Username: "driver", Email: "driver@test.com"},
	}, nil)

	svc := NewAdminService(users, orders)

	view, err := svc.ActiveDeliveries(context.Background(), admin)
	require.NoError(t, err)
	require.Len(t, view, 2)

	require.NotNil(t, view[0].Driver)
	assert.Equal(t, "driver", view[0].Driver.Username)
	require.NotNil(t, view[0].Customer)
	assert.Equal(t, "customer@test.com", view[0].Customer.Email)

	assert.Nil(t, view[1].Driver)
}
