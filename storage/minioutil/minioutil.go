package minioutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/minio/madmin-go"
	mclient "github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	minio "github.com/minio/minio/cmd"
	"github.com/stretchr/testify/require"
	"github.com/wkalt/tileland/util/testutils"
)

/*
minioutil runs an embedded minio server for tests of the S3 storage provider.
*/

////////////////////////////////////////////////////////////////////////////////

const (
	testBucket   = "tiles"
	rootUser     = "minioadmin"
	rootPassword = "minioadmin"
	startTimeout = 10 * time.Second
)

// NewServer starts a minio server on a random port, and returns a client and
// bucket name to use in tests. The third return value tears the server down.
func NewServer(t *testing.T) (*mclient.Client, string, func()) {
	t.Helper()
	ctx := context.Background()
	port, err := testutils.GetOpenPort()
	require.NoError(t, err)
	addr := fmt.Sprintf("localhost:%d", port)

	madm, err := madmin.New(addr, rootUser, rootPassword, false)
	require.NoError(t, err)

	datadir := t.TempDir()
	go minio.Main([]string{"minio", "server", "--quiet", "--address", addr, datadir})
	require.NoError(t, waitForServer(ctx, madm))

	mc, err := mclient.New(addr, &mclient.Options{
		Creds:  credentials.NewStaticV4(rootUser, rootPassword, ""),
		Secure: false,
	})
	require.NoError(t, err)
	require.NoError(t, mc.MakeBucket(ctx, testBucket, mclient.MakeBucketOptions{}))
	return mc, testBucket, func() {
		// Stopping minio calls os.Exit once it notices, so defer the stop
		// until the calling test has had time to finish.
		go func() {
			time.Sleep(5 * time.Second)
			if err := madm.ServiceStop(ctx); err != nil {
				t.Log(err)
			}
		}()
	}
}

func waitForServer(ctx context.Context, madm *madmin.AdminClient) error {
	start := time.Now()
	for {
		_, err := madm.ServerInfo(ctx)
		if err == nil {
			return nil
		}
		if time.Since(start) > startTimeout {
			return fmt.Errorf("timeout waiting for minio server to start: %w", err)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
