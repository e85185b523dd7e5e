package host

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentityString(t *testing.T) {
	cases := []struct {
		id   Identity
		want string
	}{
		{Identity{Hostname: "srv1"}, "srv1"},
		{Identity{Hostname: "srv1", Platform: "ubuntu", PlatformVersion: "22.04"}, "srv1 (ubuntu 22.04)"},
		{Identity{Hostname: "srv1", Platform: "ubuntu", Kernel: "6.1.0"}, "srv1 (ubuntu, kernel 6.1.0)"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.id.String())
	}
}

func TestNameNotEmpty(t *testing.T) {
	assert.NotEmpty(t, Name(context.Background()))
}
