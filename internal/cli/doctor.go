package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sakiengine/saki/internal/core/manifest"
	"github.com/sakiengine/saki/internal/core/pubspec"
)

// errChecksFailed is returned when doctor finds a failing check.
var errChecksFailed = errors.New("doctor: some checks failed")

type checkStatus int

const (
	checkOK checkStatus = iota
	checkWarn
	checkFail
)

// doctorCheck is one line of the doctor report.
type doctorCheck struct {
	Name   string
	Status checkStatus
	Detail string
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the workspace, manifest, toolchain and active project",
	Args:  cobra.NoArgs,
	RunE:  runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	d, err := loadDependencies(cmd)
	if err != nil {
		return err
	}

	failed := 0
	for _, c := range runDoctorChecks(cmd.Context(), d) {
		line := fmt.Sprintf("%-16s %s", c.Name, c.Detail)
		switch c.Status {
		case checkOK:
			printSuccess(d.out, d.Theme, "%s", line)
		case checkWarn:
			printWarning(d.out, d.Theme, "%s", line)
		default:
			failed++
			printFailure(d.out, d.Theme, "%s", line)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d", errChecksFailed, failed)
	}
	return nil
}

func runDoctorChecks(ctx context.Context, d *Dependencies) []doctorCheck {
	checks := []doctorCheck{{Name: "Workspace", Status: checkOK, Detail: d.Root}}

	if d.Manager.FromFile() {
		checks = append(checks, doctorCheck{Name: "Configuration", Status: checkOK, Detail: d.Manager.Path()})
	} else {
		checks = append(checks, doctorCheck{Name: "Configuration", Status: checkOK, Detail: "defaults"})
	}

	checks = append(checks, checkManifest(d))

	if version, err := d.Checker().Check(ctx); err != nil {
		checks = append(checks, doctorCheck{Name: "Flutter", Status: checkFail, Detail: err.Error()})
	} else {
		checks = append(checks, doctorCheck{Name: "Flutter", Status: checkOK, Detail: version})
	}

	cp, err := d.Store.ActiveProject()
	if err != nil {
		checks = append(checks, doctorCheck{Name: "Active project", Status: checkWarn, Detail: err.Error()})
		return checks
	}
	checks = append(checks, doctorCheck{Name: "Active project", Status: checkOK, Detail: cp.Name})

	if id, err := d.Store.ReadIdentity(cp); err != nil {
		checks = append(checks, doctorCheck{Name: "Identity", Status: checkFail, Detail: err.Error()})
	} else {
		checks = append(checks, doctorCheck{Name: "Identity", Status: checkOK, Detail: id.AppName + " (" + id.BundleID + ")"})
	}
	return checks
}

func checkManifest(d *Dependencies) doctorCheck {
	path := d.Layout.ManifestPath()
	doc, err := manifest.NewEditor(d.FS).Load(path)
	if err != nil {
		return doctorCheck{Name: "Manifest", Status: checkFail, Detail: err.Error()}
	}
	report, err := manifest.Check(doc, pubspec.Rules()...)
	if err != nil {
		return doctorCheck{Name: "Manifest", Status: checkFail, Detail: err.Error()}
	}
	if !report.OK() {
		return doctorCheck{Name: "Manifest", Status: checkFail, Detail: fmt.Sprintf("%s: %s", path, strings.Join(report.Warnings, "; "))}
	}
	return doctorCheck{Name: "Manifest", Status: checkOK, Detail: path}
}
