package cache

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablegrowth/backend/internal/domain/checklist"
)

func testCatalog() checklist.Catalog {
	link := "https://business.google.com"
	return checklist.Catalog{
		{
			Category: checklist.Category{ID: "presence", Name: "Online Presence", Type: checklist.CategoryTypeFoundational, SortOrder: 1},
			Items: []checklist.Item{
				{ID: "gbp", CategoryID: "presence", Title: "Claim Google Business Profile", IsCritical: true, ExternalLink: &link, SortOrder: 1},
				{ID: "website", CategoryID: "presence", Title: "Launch a website", SortOrder: 2},
			},
		},
		{
			Category: checklist.Category{ID: "social", Name: "Social", Type: checklist.CategoryTypeOngoing, SortOrder: 2},
			Items: []checklist.Item{
				{ID: "instagram", CategoryID: "social", Title: "Post on Instagram", SortOrder: 1},
			},
		},
	}
}

func TestInMemoryCatalogStore(t *testing.T) {
	ctx := context.Background()

	t.Run("miss then hit", func(t *testing.T) {
		store := NewInMemoryCatalogStore()

		_, ok, err := store.Get(ctx, "all")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.Set(ctx, "all", testCatalog(), time.Minute))
		got, ok, err := store.Get(ctx, "all")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, testCatalog(), got)
	})

	t.Run("entries expire", func(t *testing.T) {
		store := NewInMemoryCatalogStore()
		now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		store.now = func() time.Time { return now }

		require.NoError(t, store.Set(ctx, "all", testCatalog(), time.Minute))
		now = now.Add(time.Minute)

		_, ok, err := store.Get(ctx, "all")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("returned catalogs are copies", func(t *testing.T) {
		store := NewInMemoryCatalogStore()
		require.NoError(t, store.Set(ctx, "all", testCatalog(), time.Minute))

		got, _, _ := store.Get(ctx, "all")
		got[0].Items[0].Title = "changed"

		again, _, _ := store.Get(ctx, "all")
		assert.Equal(t, "Claim Google Business Profile", again[0].Items[0].Title)
	})

	t.Run("invalidate all", func(t *testing.T) {
		store := NewInMemoryCatalogStore()
		require.NoError(t, store.Set(ctx, "a", testCatalog(), time.Minute))
		require.NoError(t, store.Set(ctx, "b", testCatalog(), time.Minute))

		require.NoError(t, store.InvalidateAll(ctx))

		_, okA, _ := store.Get(ctx, "a")
		_, okB, _ := store.Get(ctx, "b")
		assert.False(t, okA)
		assert.False(t, okB)
		assert.NoError(t, store.Close())
	})
}

// fakeRedis answers GET, SET, DEL and SCAN in process so the client never dials
type fakeRedis struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeRedisClient() (*redis.Client, *fakeRedis) {
	fake := &fakeRedis{data: make(map[string]string)}
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"})
	client.AddHook(fake)
	return client, fake
}

func (f *fakeRedis) DialHook(next redis.DialHook) redis.DialHook { return next }

func (f *fakeRedis) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return next
}

func (f *fakeRedis) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		f.mu.Lock()
		defer f.mu.Unlock()

		args := cmd.Args()
		switch c := cmd.(type) {
		case *redis.StringCmd:
			v, ok := f.data[args[1].(string)]
			if !ok {
				c.SetErr(redis.Nil)
				return redis.Nil
			}
			c.SetVal(v)
		case *redis.StatusCmd:
			var value string
			switch v := args[2].(type) {
			case []byte:
				value = string(v)
			case string:
				value = v
			}
			f.data[args[1].(string)] = value
			c.SetVal("OK")
		case *redis.IntCmd:
			var n int64
			for _, k := range args[1:] {
				if _, ok := f.data[k.(string)]; ok {
					delete(f.data, k.(string))
					n++
				}
			}
			c.SetVal(n)
		case *redis.ScanCmd:
			prefix := strings.TrimSuffix(args[3].(string), "*")
			var keys []string
			for k := range f.data {
				if strings.HasPrefix(k, prefix) {
					keys = append(keys, k)
				}
			}
			c.SetVal(keys, 0)
		default:
			return next(ctx, cmd)
		}
		return nil
	}
}

func TestRedisCatalogStore(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a catalog", func(t *testing.T) {
		client, _ := newFakeRedisClient()
		store := NewRedisCatalogStoreWithClient(client)

		_, ok, err := store.Get(ctx, "all")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, store.Set(ctx, "all", testCatalog(), time.Minute))
		got, ok, err := store.Get(ctx, "all")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, testCatalog(), got)
	})

	t.Run("corrupted entries are dropped", func(t *testing.T) {
		client, fake := newFakeRedisClient()
		store := NewRedisCatalogStoreWithClient(client)
		fake.data[defaultKeyPrefix+"all"] = "{not json"

		_, ok, err := store.Get(ctx, "all")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NotContains(t, fake.data, defaultKeyPrefix+"all")
	})

	t.Run("invalidate only touches its prefix", func(t *testing.T) {
		client, fake := newFakeRedisClient()
		store := NewRedisCatalogStoreWithClient(client, WithKeyPrefix("test:catalog:"))
		fake.data["other:key"] = "keep"

		require.NoError(t, store.Set(ctx, "all", testCatalog(), time.Minute))
		require.NoError(t, store.InvalidateAll(ctx))

		assert.Equal(t, map[string]string{"other:key": "keep"}, fake.data)
		assert.NoError(t, store.Close())
	})
}
