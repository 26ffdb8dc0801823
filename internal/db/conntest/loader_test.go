//go:build conntest

package conntest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vvka-141/qload/internal/db"
	"github.com/vvka-141/qload/internal/loader"
	"github.com/vvka-141/qload/internal/logging"
	"github.com/vvka-141/qload/internal/progress"
	"github.com/vvka-141/qload/internal/queue"
)

func TestLoader_EndToEnd(t *testing.T) {
	for _, stream := range []bool{false, true} {
		name := "eager"
		if stream {
			name = "stream"
		}
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			src := db.NewSource(connect(t, parseConnString(t)))

			q, err := queue.Connect(ctx, queue.RedisConfig{URL: redisContainer.URL, MaxRetries: -1})
			require.NoError(t, err)
			defer q.Close()

			key := "conntest:" + name
			l := loader.New(src, q, progress.Discard{}, logging.NewNullLogger(),
				loader.WithBatchSize(5), loader.WithStream(stream))

			result, err := l.Run(ctx, key, "SELECT apk FROM android WHERE wdj = 2 ORDER BY id")
			require.NoError(t, err)
			assert.Equal(t, 12, result.Rows)
			assert.Equal(t, 3, result.Batches)

			n, err := q.Len(ctx, key)
			require.NoError(t, err)
			assert.EqualValues(t, 12, n)
		})
	}
}
