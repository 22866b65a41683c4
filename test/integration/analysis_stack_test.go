//go:build integration

package integration

import (
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/ProteinScope/pkg/client"
	types "github.com/turtacn/ProteinScope/pkg/types/analysis"
)

func TestStack_AnalysisIsPersistedAndListed(t *testing.T) {
	stack := StartStack(t, "1CRN", "1UBQ")
	ctx := context.Background()

	first, err := stack.Client.Analyses().Analyze(ctx, &types.AnalyzeRequest{PDBID: "1CRN", VizMode: "atoms"})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	_, err = stack.Client.Analyses().Analyze(ctx, &types.AnalyzeRequest{PDBID: "1UBQ"})
	require.NoError(t, err)

	rec, err := stack.Client.Analyses().Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "1CRN", rec.PDBID)
	assert.Equal(t, "atoms", rec.VizMode)
	assert.Equal(t, 20, rec.AtomCount)
	assert.Equal(t, 3, rec.Secondary.Helix)

	page, err := stack.Client.Analyses().List(ctx, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Pagination.Total)
	require.Len(t, page.Records, 2)
	assert.Equal(t, "1UBQ", page.Records[0].PDBID)
}

func TestStack_StructureTextIsCachedInRedis(t *testing.T) {
	stack := StartStack(t, "1CRN")
	ctx := context.Background()

	first, err := stack.Client.Analyses().Analyze(ctx, &types.AnalyzeRequest{PDBID: "1CRN"})
	require.NoError(t, err)
	second, err := stack.Client.Analyses().Analyze(ctx, &types.AnalyzeRequest{PDBID: "1CRN"})
	require.NoError(t, err)

	assert.Equal(t, 1, stack.Origin.Calls)
	assert.Equal(t, "rcsb", first.Source)
	assert.Equal(t, "cache", second.Source)
}

func TestStack_UnknownRecord(t *testing.T) {
	stack := StartStack(t)
	_, err := stack.Client.Analyses().Get(context.Background(), "00000000-0000-0000-0000-000000000000")

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.IsNotFound())
}

func TestStack_ReadinessReportsBackends(t *testing.T) {
	stack := StartStack(t)
	checks := stack.Infra.HealthChecks()
	require.Len(t, checks, 2)
	for _, c := range checks {
		assert.NoError(t, c.Check(context.Background()), c.Name())
	}

	resp, err := http.Get(stack.Client.BaseURL() + "/readyz")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Contains(t, string(body), "postgres")
	assert.Contains(t, string(body), "redis")
}

//Personal.AI order the ending
