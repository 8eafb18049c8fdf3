package photocard_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/yeonhwa/bloomdesk/internal/photocard"
)

func newService(t *testing.T) (*photocard.Service, *photocard.MockRepository) {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := photocard.NewMockRepository(ctrl)

	return photocard.NewService(repo), repo
}

func photos(n int) []photocard.Photo {
	ps := make([]photocard.Photo, n)
	for i := range ps {
		ps[i] = photocard.Photo{
			URL:              fmt.Sprintf("/photos/%d.jpg", i),
			OriginalFilename: fmt.Sprintf("bouquet-%d.jpg", i),
		}
	}

	return ps
}

func TestService_Create(t *testing.T) {
	t.Run("KeepsPhotoOrder", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().
			CreateCard(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *photocard.Card) error {
				require.Len(t, c.Photos, 3)
				assert.Equal(t, "/photos/0.jpg", c.Photos[0].URL)
				assert.Equal(t, "/photos/2.jpg", c.Photos[2].URL)
				c.ID = uuid.New()
				return nil
			})

		got, err := svc.Create(context.Background(), photocard.CardParams{
			Title:  "Spring bouquet",
			Tags:   []string{"bouquet", "spring"},
			Photos: photos(3),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, got.ID)
	})

	t.Run("RejectsMoreThanTenPhotos", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(context.Background(), photocard.CardParams{
			Title:  "Too many",
			Photos: photos(11),
		})
		assert.ErrorIs(t, err, photocard.ErrTooManyPhotos)
	})

	t.Run("AllowsExactlyTenPhotos", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().CreateCard(gomock.Any(), gomock.Any()).Return(nil)

		_, err := svc.Create(context.Background(), photocard.CardParams{
			Title:  "Full card",
			Photos: photos(10),
		})
		require.NoError(t, err)
	})

	t.Run("RequiresTitle", func(t *testing.T) {
		svc, _ := newService(t)

		_, err := svc.Create(context.Background(), photocard.CardParams{Photos: photos(1)})
		assert.Error(t, err)
	})

	t.Run("NilTagsBecomeEmptyList", func(t *testing.T) {
		svc, repo := newService(t)

		repo.EXPECT().
			CreateCard(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *photocard.Card) error {
				assert.NotNil(t, c.Tags)
				assert.Empty(t, c.Tags)
				return nil
			})

		_, err := svc.Create(context.Background(), photocard.CardParams{Title: "No tags"})
		require.NoError(t, err)
	})
}

func TestService_Update_PreservesIdentity(t *testing.T) {
	svc, repo := newService(t)

	existing := &photocard.Card{ID: uuid.New(), Title: "Old title"}

	repo.EXPECT().GetCard(gomock.Any(), existing.ID).Return(existing, nil)
	repo.EXPECT().
		UpdateCard(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *photocard.Card) error {
			assert.Equal(t, existing.ID, c.ID)
			assert.Equal(t, "New title", c.Title)
			return nil
		})

	_, err := svc.Update(context.Background(), existing.ID, photocard.CardParams{Title: "New title"})
	require.NoError(t, err)
}

func TestService_Update_NotFound(t *testing.T) {
	svc, repo := newService(t)

	id := uuid.New()
	repo.EXPECT().GetCard(gomock.Any(), id).Return(nil, photocard.ErrNotFound)

	_, err := svc.Update(context.Background(), id, photocard.CardParams{Title: "New title"})
	assert.ErrorIs(t, err, photocard.ErrNotFound)
}

func TestService_UpsertBySale(t *testing.T) {
	svc, repo := newService(t)

	saleID := uuid.New()

	repo.EXPECT().
		UpsertBySale(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, c *photocard.Card) error {
			require.NotNil(t, c.SaleID)
			assert.Equal(t, saleID, *c.SaleID)
			c.ID = uuid.New()
			return nil
		})

	got, err := svc.UpsertBySale(context.Background(), saleID, photocard.CardParams{
		Title:  "Anniversary arrangement",
		Photos: photos(2),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, got.ID)
}

func TestService_List_PassesFilters(t *testing.T) {
	svc, repo := newService(t)

	customerID := uuid.New()

	repo.EXPECT().
		ListCards(gomock.Any(), photocard.Query{Tag: "wedding", CustomerID: &customerID}).
		Return([]*photocard.Card{}, nil)

	_, err := svc.List(context.Background(), photocard.Query{Tag: "wedding", CustomerID: &customerID})
	require.NoError(t, err)
}
