package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devconnect/connect-api/internal/models"
	"github.com/devconnect/connect-api/internal/store"
)

func TestGetUser(t *testing.T) {
	t.Run("returns the profile", func(t *testing.T) {
		user := testUser(t)
		users := &fakeUserStore{
			getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
				return user, nil
			},
		}
		handler := newTestHandler(t, users, &fakeConnectionStore{}, &fakeTodoStore{})
		router := newTestRouter(handler, user)

		recorder := doJSON(router, http.MethodGet, "/api/users/user-1", "")

		require.Equal(t, http.StatusOK, recorder.Code)
		assert.NotContains(t, recorder.Body.String(), "password")
	})

	t.Run("unknown user returns 404", func(t *testing.T) {
		user := testUser(t)
		users := &fakeUserStore{
			getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
				return nil, store.ErrNotFound
			},
		}
		handler := newTestHandler(t, users, &fakeConnectionStore{}, &fakeTodoStore{})
		router := newTestRouter(handler, user)

		recorder := doJSON(router, http.MethodGet, "/api/users/ghost", "")
		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestListUsers(t *testing.T) {
	user := testUser(t)
	users := &fakeUserStore{
		listFn: func(ctx context.Context) ([]*models.User, error) {
			return []*models.User{user, {ID: "user-2", FirstName: "Bob", Email: "bob@x.com"}}, nil
		},
	}
	handler := newTestHandler(t, users, &fakeConnectionStore{}, &fakeTodoStore{})
	router := newTestRouter(handler, user)

	recorder := doJSON(router, http.MethodGet, "/api/users", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	var resp UserListResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 2)
	assert.Equal(t, "user-1", resp.Data[0].ID)
	assert.Equal(t, "user-2", resp.Data[1].ID)
}

func TestDeleteUser(t *testing.T) {
	t.Run("second delete of the same ID returns 404", func(t *testing.T) {
		user := testUser(t)
		deleted := map[string]bool{}
		users := &fakeUserStore{
			deleteFn: func(ctx context.Context, id string) error {
				if deleted[id] {
					return store.ErrNotFound
				}
				deleted[id] = true
				return nil
			},
		}
		handler := newTestHandler(t, users, &fakeConnectionStore{}, &fakeTodoStore{})
		router := newTestRouter(handler, user)

		first := doJSON(router, http.MethodDelete, "/api/users/user-2", "")
		require.Equal(t, http.StatusOK, first.Code)

		second := doJSON(router, http.MethodDelete, "/api/users/user-2", "")
		require.Equal(t, http.StatusNotFound, second.Code)

		var resp models.ErrorResponse
		require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
		assert.Equal(t, "User not found", resp.Message)
	})
}
