package host

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/shirou/gopsutil/v3/host"
)

// Identity описывает узел, на котором выполнен вызов.
type Identity struct {
	Hostname        string
	Platform        string
	PlatformVersion string
	Kernel          string
}

// String возвращает компактную форму для журнала аудита.
func (id Identity) String() string {
	var b strings.Builder
	b.WriteString(id.Hostname)
	var details []string
	if id.Platform != "" {
		details = append(details, strings.TrimSpace(id.Platform+" "+id.PlatformVersion))
	}
	if id.Kernel != "" {
		details = append(details, "kernel "+id.Kernel)
	}
	if len(details) > 0 {
		b.WriteString(" (")
		b.WriteString(strings.Join(details, ", "))
		b.WriteString(")")
	}
	return b.String()
}

// Describe собирает сведения об узле через gopsutil.
func Describe(ctx context.Context) (Identity, error) {
	info, err := host.InfoWithContext(ctx)
	if err != nil {
		return Identity{}, fmt.Errorf("host info: %w", err)
	}
	return Identity{
		Hostname:        info.Hostname,
		Platform:        info.Platform,
		PlatformVersion: info.PlatformVersion,
		Kernel:          info.KernelVersion,
	}, nil
}

// Name возвращает описание узла, при ошибке gopsutil откатывается на os.Hostname.
func Name(ctx context.Context) string {
	id, err := Describe(ctx)
	if err == nil && id.Hostname != "" {
		return id.String()
	}
	name, herr := os.Hostname()
	if herr != nil {
		return "unknown"
	}
	return name
}
