package reconcile_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.trai.ch/forge/internal/core/ports/mocks"
	"go.trai.ch/forge/internal/engine/reconcile"
	"go.uber.org/mock/gomock"
)

func TestParseDepReport_SkipsTargetAndSelf(t *testing.T) {
	report := "main.o: main.c include/app.h include/util.h\n"

	deps := reconcile.ParseDepReport(report, "/proj", "main.c")
	require.Equal(t, []string{"include/app.h", "include/util.h"}, deps)
}

func TestParseDepReport_JoinsContinuationLines(t *testing.T) {
	report := "main.o: main.c include/app.h \\\n include/util.h \\\n include/log.h\n"

	deps := reconcile.ParseDepReport(report, "/proj", "main.c")
	require.Equal(t, []string{"include/app.h", "include/log.h", "include/util.h"}, deps)
}

func TestParseDepReport_DropsPathsOutsideRoot(t *testing.T) {
	report := "main.o: main.c /usr/include/stdio.h ../shared/ext.h include/app.h\n"

	deps := reconcile.ParseDepReport(report, "/proj", "main.c")
	require.Equal(t, []string{"include/app.h"}, deps)
}

func TestParseDepReport_ResolvesAbsolutePathsInsideRoot(t *testing.T) {
	report := "main.o: main.c " + filepath.Join("/proj", "include", "app.h") + "\n"

	deps := reconcile.ParseDepReport(report, "/proj", "main.c")
	require.Equal(t, []string{"include/app.h"}, deps)
}

func TestParseDepReport_Deduplicates(t *testing.T) {
	report := "main.o: main.c include/app.h include/app.h\n"

	deps := reconcile.ParseDepReport(report, "/proj", "main.c")
	require.Equal(t, []string{"include/app.h"}, deps)
}

func TestScanner_WrapsToolchainFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	tc := mocks.NewMockToolchain(ctrl)
	tc.EXPECT().DepReport(gomock.Any(), "broken.c").Return("", context.DeadlineExceeded)

	s := reconcile.NewScanner("/proj", tc)
	_, err := s.Scan(context.Background(), "broken.c")
	require.Error(t, err)
}
