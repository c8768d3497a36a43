package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/memoryboard/internal/models"
)

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.Liked("group")
	m.Liked("group")
	m.Liked("post")
	m.Granted(models.BadgeHighVolume, models.BadgeAnniversary)
	m.Granted()
	m.Deleted("comment", 3)
	m.Deleted("post", 0)
	m.Failed("badges")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.likes.WithLabelValues("group")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.likes.WithLabelValues("post")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.badges.WithLabelValues("high-volume")))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.deleted.WithLabelValues("comment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.failures.WithLabelValues("badges")))

	m.ObserveRPC("/memoryboard.v1.GroupService/LikeGroup", "ok", 0)
	assert.Equal(t, 1, testutil.CollectAndCount(m.rpc))

	// Zero-count deletes do not create a series.
	assert.Equal(t, 1, testutil.CollectAndCount(m.deleted))
}

func TestNew_RegistersOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)
	assert.Panics(t, func() { New(reg) })
}
