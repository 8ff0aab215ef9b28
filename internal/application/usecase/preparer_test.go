package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentchain/internal/domain/model"
)

func exportOf(moments ...model.Moment) *model.Export {
	return &model.Export{
		Moments: moments,
		Account: &model.Account{ID: "abc", Nickname: "Bob", Avatar: "http://x/a.jpg"},
	}
}

func TestFilterIsIdempotent(t *testing.T) {
	p := NewPreparer(map[string]struct{}{"m-2": {}})

	moments := []model.Moment{{ID: "m-1"}, {ID: "m-2"}, {ID: "m-3"}}
	once := p.Filter(moments)
	twice := p.Filter(once)

	assert.Equal(t, []model.Moment{{ID: "m-1"}, {ID: "m-3"}}, once)
	assert.Equal(t, once, twice)
}

func TestPrepareOrdersByPublishTime(t *testing.T) {
	p := NewPreparer(nil)
	export := exportOf(
		model.Moment{ID: "b", PublishTime: "2000"},
		model.Moment{ID: "c", PublishTime: "3000"},
		model.Moment{ID: "a", PublishTime: "1000"},
	)

	asc, _ := p.Prepare(export, false, OrderAsc)
	desc, _ := p.Prepare(export, false, OrderDesc)

	require.Len(t, asc, 3)
	assert.Equal(t, "a", asc[0].ID)
	assert.Equal(t, "b", asc[1].ID)
	assert.Equal(t, "c", asc[2].ID)

	// Descending is the exact reverse of ascending.
	require.Len(t, desc, 3)
	for i := range asc {
		assert.Equal(t, asc[i].ID, desc[len(desc)-1-i].ID)
	}
}

func TestPrepareNormalizesEmptyShares(t *testing.T) {
	p := NewPreparer(nil)
	export := exportOf(model.Moment{
		ID:          "m-1",
		Type:        model.MomentTypeShare,
		PublishTime: "1000",
	})

	moments, _ := p.Prepare(export, false, OrderAsc)

	require.Len(t, moments, 1)
	assert.Equal(t, model.MomentTypeText, moments[0].Type)
}

func TestPrepareDropsRedundantThumbnails(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		want   []string
	}{
		{
			"thumbnail with full-size sibling",
			[]string{"http://x/pic/150", "http://x/pic/0"},
			[]string{"http://x/pic/0"},
		},
		{
			"thumbnail without sibling",
			[]string{"http://x/pic/150"},
			[]string{"http://x/pic/150"},
		},
		{
			"unrelated references untouched",
			[]string{"http://x/one/0", "http://x/two/150", "http://x/two/0"},
			[]string{"http://x/one/0", "http://x/two/0"},
		},
	}

	p := NewPreparer(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			export := exportOf(model.Moment{ID: "m", PublishTime: "1", Images: tt.images})
			moments, _ := p.Prepare(export, false, OrderAsc)
			require.Len(t, moments, 1)
			assert.Equal(t, tt.want, moments[0].DisplayImages)
		})
	}
}

func TestPrepareSelectsSharePreviewImage(t *testing.T) {
	p := NewPreparer(nil)

	withImages := model.Moment{
		ID: "m-1", Type: model.MomentTypeShare, ShareURL: "http://s", PublishTime: "1",
		Images: []string{"http://x/p1", "http://x/p2"},
	}
	withoutImages := model.Moment{
		ID: "m-2", Type: model.MomentTypeShare, ShareURL: "http://s", PublishTime: "2",
		ShareImage: "stale",
	}

	moments, _ := p.Prepare(exportOf(withImages, withoutImages), false, OrderAsc)

	require.Len(t, moments, 2)
	assert.Equal(t, "http://x/p1", moments[0].ShareImage)
	assert.Empty(t, moments[1].ShareImage)
}

func TestPrepareLocalMode(t *testing.T) {
	p := NewPreparer(nil)
	export := exportOf(model.Moment{
		ID: "m-1", PublishTime: "1", Images: []string{"http://x/a.jpg"},
	})

	moments, account := p.Prepare(export, true, OrderAsc)

	require.Len(t, moments, 1)
	require.Len(t, moments[0].DisplayImages, 1)
	assert.Equal(t, "images/aHR0cDovL3gvYS5qcGc=.jpg", moments[0].DisplayImages[0])
	assert.Equal(t, "images/aHR0cDovL3gvYS5qcGc=.jpg", account.DisplayAvatar)
	assert.Empty(t, account.DisplayBanner, "no banner reference, no handle")
}

func TestPreparePassesRemoteReferencesThrough(t *testing.T) {
	p := NewPreparer(nil)
	_, account := p.Prepare(exportOf(), false, OrderAsc)

	assert.Equal(t, "http://x/a.jpg", account.DisplayAvatar)
}

func TestPrepareSynthesizesMissingAccount(t *testing.T) {
	p := NewPreparer(nil)
	_, account := p.Prepare(&model.Export{}, false, OrderAsc)

	assert.Equal(t, "b80bb7740288fda1f201890375a60c8f", account.ID)
	assert.Empty(t, account.Nickname)
	assert.Empty(t, account.Avatar)
}

func TestLocalAssetHandleIsStableAndDistinct(t *testing.T) {
	a := LocalAssetHandle("http://x/a.jpg")
	b := LocalAssetHandle("http://x/b.jpg")

	assert.Equal(t, a, LocalAssetHandle("http://x/a.jpg"))
	assert.NotEqual(t, a, b)
}
