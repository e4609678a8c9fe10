package board

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/go-github/v79/github"
	"github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/noptexit/create-project-action/internal/snapshots"
	"github.com/noptexit/create-project-action/pkg/http/mark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Classic_CreateBoardAndColumns(t *testing.T) {
	rec := newRecorder(t)
	nextColumnID := int64(100)
	client := github.NewClient(mock.NewMockedHTTPClient(
		mock.WithRequestMatchHandler(
			PostReposProjectsByOwnerByRepo,
			rec.andThen(mockResponse(t, http.StatusCreated, map[string]any{
				"id":       1002604,
				"node_id":  "MDc6UHJvamVjdDEwMDI2MDQ=",
				"number":   1,
				"name":     "Release 1.0",
				"html_url": "https://github.com/octo-org/board/projects/1",
			})),
		),
		mock.WithRequestMatchHandler(
			PostProjectsColumnsByProjectID,
			rec.andThen(func(w http.ResponseWriter, r *http.Request) {
				nextColumnID++
				mockResponse(t, http.StatusCreated, map[string]any{
					"id":      nextColumnID,
					"node_id": "COLUMN",
					"name":    "column",
				})(w, r)
			}),
		),
	))

	svc := NewClassic(client)
	ctx := context.Background()

	b, err := svc.CreateBoard(ctx, Options{
		Owner:       "octo-org",
		Repo:        "board",
		Name:        "Release 1.0",
		Description: "Tracks the release",
		Private:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, &Board{
		ID:     1002604,
		NodeID: "MDc6UHJvamVjdDEwMDI2MDQ=",
		Number: 1,
		URL:    "https://github.com/octo-org/board/projects/1",
		Name:   "Release 1.0",
	}, b)
	assert.Equal(t, "1002604", b.Identifier())

	for _, name := range []string{"To Do", "In Progress", "Done"} {
		column, err := svc.CreateColumn(ctx, b, name)
		require.NoError(t, err)
		assert.NotZero(t, column.ID)
	}

	require.NoError(t, snapshots.Test("classic_requests", rec.Requests()))
}

func Test_Classic_CreateBoardWithoutDescription(t *testing.T) {
	rec := newRecorder(t)
	client := github.NewClient(mock.NewMockedHTTPClient(
		mock.WithRequestMatchHandler(
			PostReposProjectsByOwnerByRepo,
			rec.andThen(mockResponse(t, http.StatusCreated, map[string]any{"id": 7, "name": "Board"})),
		),
	))

	_, err := NewClassic(client).CreateBoard(context.Background(), Options{Owner: "o", Repo: "r", Name: "Board"})
	require.NoError(t, err)

	requests := rec.Requests()
	require.Len(t, requests, 1)
	assert.Equal(t, map[string]any{"name": "Board"}, requests[0].Body)
	assert.Equal(t, "application/vnd.github.inertia-preview+json", requests[0].Accept)
}

func Test_Classic_Errors(t *testing.T) {
	tests := []struct {
		name           string
		status         int
		message        string
		expectedMark   error
		expectedErrMsg string
	}{
		{
			name:           "classic projects disabled",
			status:         http.StatusGone,
			message:        "Projects (classic) has been deprecated",
			expectedMark:   mark.ErrGone,
			expectedErrMsg: "classic projects API",
		},
		{
			name:           "validation failed",
			status:         http.StatusUnprocessableEntity,
			message:        "Validation Failed",
			expectedMark:   mark.ErrInvalid,
			expectedErrMsg: "Validation Failed",
		},
		{
			name:           "insufficient permissions",
			status:         http.StatusForbidden,
			message:        "Resource not accessible by integration",
			expectedMark:   mark.ErrForbidden,
			expectedErrMsg: "Resource not accessible by integration",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := github.NewClient(mock.NewMockedHTTPClient(
				mock.WithRequestMatchHandler(
					PostReposProjectsByOwnerByRepo,
					mockResponse(t, tc.status, map[string]any{"message": tc.message}),
				),
			))

			b, err := NewClassic(client).CreateBoard(context.Background(), Options{Owner: "o", Repo: "r", Name: "n"})
			require.Error(t, err)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, tc.expectedMark)
			assert.Contains(t, err.Error(), tc.expectedErrMsg)

			var ghErr *github.ErrorResponse
			assert.ErrorAs(t, err, &ghErr)
		})
	}
}

func Test_Classic_CreateColumnErrors(t *testing.T) {
	t.Run("board without numeric id", func(t *testing.T) {
		_, err := NewClassic(github.NewClient(nil)).CreateColumn(context.Background(), &Board{NodeID: "PVT_1"}, "To Do")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "project has no numeric ID")
	})

	t.Run("api failure is marked", func(t *testing.T) {
		client := github.NewClient(mock.NewMockedHTTPClient(
			mock.WithRequestMatchHandler(
				PostProjectsColumnsByProjectID,
				mockResponse(t, http.StatusUnprocessableEntity, map[string]any{"message": "Validation Failed"}),
			),
		))

		_, err := NewClassic(client).CreateColumn(context.Background(), &Board{ID: 1}, "Done")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "classic projects API")
		assert.ErrorIs(t, err, mark.ErrInvalid)
	})
}
