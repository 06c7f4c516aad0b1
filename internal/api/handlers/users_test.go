package handlers_test

import (
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/alexandria/journal-server/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().WithEmail("first@x.com").BuildAndAuthenticate(t, ts)
	testutil.NewUserBuilder().WithEmail("second@x.com").BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodGet, ts.APIURL("/users"), token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "password", "listing must not expose credentials")

	resp2 := doJSON(t, http.MethodGet, ts.APIURL("/users"), token, nil)
	defer resp2.Body.Close()

	var users []domain.User
	testutil.AssertJSONResponse(t, resp2, &users)
	require.Len(t, users, 2)
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestUserHandler_List_RequiresAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := doJSON(t, http.MethodGet, ts.APIURL("/users"), "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUserHandler_MyStats(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, tokenAlice := testutil.NewUserBuilder().WithFullName("Alice").BuildAndAuthenticate(t, ts)
	bob, tokenBob := testutil.NewUserBuilder().WithFullName("Bob").BuildAndAuthenticate(t, ts)
	carol, tokenCarol := testutil.NewUserBuilder().WithFullName("Carol").BuildAndAuthenticate(t, ts)

	// Alice asks Bob twice and Carol once.
	for i := 0; i < 2; i++ {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/questions/user-question/"+bob.ID.String()), tokenAlice,
			map[string]string{"text": fmt.Sprintf("to bob %d", i)})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}
	resp := doJSON(t, http.MethodPost, ts.APIURL("/questions/user-question/"+carol.ID.String()), tokenAlice,
		map[string]string{"text": "to carol"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Bob asks Alice once; Alice answers it through the daily workflow.
	askBack := doJSON(t, http.MethodPost, ts.APIURL("/questions/user-question/"+alice.ID.String()), tokenBob,
		map[string]string{"text": "back at you"})
	require.Equal(t, http.StatusOK, askBack.StatusCode)

	var backQ domain.Question
	testutil.AssertJSONResponse(t, askBack, &backQ)
	askBack.Body.Close()

	answerResp := doJSON(t, http.MethodPost, ts.APIURL(fmt.Sprintf("/questions/daily/%s/answer", backQ.ID)), tokenAlice,
		map[string]string{"text": "answered"})
	require.Equal(t, http.StatusOK, answerResp.StatusCode)
	answerResp.Body.Close()

	statsResp := doJSON(t, http.MethodGet, ts.APIURL("/users/me/stats"), tokenAlice, nil)
	defer statsResp.Body.Close()
	require.Equal(t, http.StatusOK, statsResp.StatusCode)

	var stats domain.UserStats
	testutil.AssertJSONResponse(t, statsResp, &stats)

	assert.Equal(t, int64(3), stats.QuestionsAsked)
	assert.Equal(t, int64(1), stats.QuestionsAnswered)

	require.Len(t, stats.TopAsked, 2)
	assert.Equal(t, bob.ID, stats.TopAsked[0].UserID)
	assert.Equal(t, "Bob", stats.TopAsked[0].Name)
	assert.Equal(t, int64(2), stats.TopAsked[0].Count)
	assert.Equal(t, carol.ID, stats.TopAsked[1].UserID)

	require.Len(t, stats.TopReceived, 1)
	assert.Equal(t, bob.ID, stats.TopReceived[0].UserID)
	assert.Equal(t, int64(1), stats.TopReceived[0].Count)

	// A user with no activity gets zeroed stats, not an error.
	emptyResp := doJSON(t, http.MethodGet, ts.APIURL("/users/me/stats"), tokenCarol, nil)
	defer emptyResp.Body.Close()
	require.Equal(t, http.StatusOK, emptyResp.StatusCode)

	var empty domain.UserStats
	testutil.AssertJSONResponse(t, emptyResp, &empty)
	assert.Equal(t, int64(0), empty.QuestionsAsked)
	assert.Equal(t, int64(0), empty.QuestionsAnswered)
	assert.Empty(t, empty.TopAsked)
}
