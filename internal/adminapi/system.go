package adminapi

import (
	"os"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
	"github.com/vitalhub/storefront/internal/webserver"
)

func registerSystemRoutes() {
	webserver.ApiGET("/system/info", systemInfo)
	webserver.ApiGET("/oprlogs", listOprLogs)
}

// listOprLogs pages through the operator audit trail, newest first.
func listOprLogs(c echo.Context) error {
	page, pageSize := parsePagination(c)
	rows, err := getApp(c).Store().ListOprLogs(c.Request().Context())
	if err != nil {
		return failErr(c, err)
	}
	total := int64(len(rows))
	start := (page - 1) * pageSize
	if start > len(rows) {
		start = len(rows)
	}
	end := start + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return paged(c, rows[start:end], total, page, pageSize)
}

// systemInfo reports host and process stats for the admin dashboard.
func systemInfo(c echo.Context) error {
	info := map[string]interface{}{
		"go_version": runtime.Version(),
		"goroutines": runtime.NumGoroutine(),
		"backend":    getApp(c).Store().Name(),
		"time":       time.Now().Format(time.RFC3339),
	}

	if cpuuse, err := cpu.Percent(0, false); err == nil && len(cpuuse) > 0 {
		info["cpu_percent"] = cpuuse[0]
	}
	if meminfo, err := mem.VirtualMemory(); err == nil {
		info["mem_used_mb"] = meminfo.Used / 1024 / 1024
		info["mem_percent"] = meminfo.UsedPercent
	}
	if hostinfo, err := host.Info(); err == nil {
		info["hostname"] = hostinfo.Hostname
		info["os"] = hostinfo.OS
		info["platform"] = hostinfo.Platform
		info["uptime_sec"] = hostinfo.Uptime
	}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if pm, err := p.MemoryInfo(); err == nil {
			info["proc_rss_mb"] = pm.RSS / 1024 / 1024
		}
		if pc, err := p.CPUPercent(); err == nil {
			info["proc_cpu_percent"] = pc
		}
	}
	return ok(c, info)
}
