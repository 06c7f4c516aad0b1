package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/alexandria/journal-server/internal/domain"
	"github.com/alexandria/journal-server/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doJSON(t *testing.T, method, url, token string, body interface{}) *http.Response {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func TestQuestionHandler_DailyFlow(t *testing.T) {
	ts := testutil.NewTestServer(t)

	userA, tokenA := testutil.NewUserBuilder().WithEmail("a@x.com").BuildAndAuthenticate(t, ts)
	userB, tokenB := testutil.NewUserBuilder().WithEmail("b@x.com").BuildAndAuthenticate(t, ts)
	_, tokenC := testutil.NewUserBuilder().WithEmail("c@x.com").BuildAndAuthenticate(t, ts)

	// A asks B a question
	askResp := doJSON(t, http.MethodPost, ts.APIURL("/questions/user-question/"+userB.ID.String()), tokenA,
		map[string]string{"text": "What's new?"})
	defer askResp.Body.Close()
	require.Equal(t, http.StatusOK, askResp.StatusCode)

	var asked domain.Question
	testutil.AssertJSONResponse(t, askResp, &asked)
	assert.Equal(t, userA.ID, asked.AuthorID)
	assert.Equal(t, userB.ID, asked.RecipientID)
	assert.False(t, asked.IsAnswered)

	// B fetches the daily question, receives A's question
	dailyResp := doJSON(t, http.MethodGet, ts.APIURL("/questions/daily"), tokenB, nil)
	defer dailyResp.Body.Close()
	require.Equal(t, http.StatusOK, dailyResp.StatusCode)

	var daily domain.Question
	testutil.AssertJSONResponse(t, dailyResp, &daily)
	assert.Equal(t, asked.ID, daily.ID)

	// C may not answer B's question
	forbiddenResp := doJSON(t, http.MethodPost, ts.APIURL(fmt.Sprintf("/questions/daily/%s/answer", daily.ID)), tokenC,
		map[string]string{"text": "intrusion"})
	defer forbiddenResp.Body.Close()
	assert.Equal(t, http.StatusForbidden, forbiddenResp.StatusCode)

	// B answers
	answerResp := doJSON(t, http.MethodPost, ts.APIURL(fmt.Sprintf("/questions/daily/%s/answer", daily.ID)), tokenB,
		map[string]string{"text": "Nothing much"})
	defer answerResp.Body.Close()
	require.Equal(t, http.StatusOK, answerResp.StatusCode)

	var answer domain.Answer
	testutil.AssertJSONResponse(t, answerResp, &answer)
	assert.Equal(t, daily.ID, answer.QuestionID)
	assert.Equal(t, userB.ID, answer.AuthorID)
	assert.Equal(t, "Nothing much", answer.Text)

	// Re-polling the daily question the same day now 404s
	repollResp := doJSON(t, http.MethodGet, ts.APIURL("/questions/daily"), tokenB, nil)
	defer repollResp.Body.Close()
	testutil.AssertErrorResponse(t, repollResp, http.StatusNotFound, "already answered")

	// Answering the same question again is a conflict
	dupResp := doJSON(t, http.MethodPost, ts.APIURL(fmt.Sprintf("/questions/daily/%s/answer", daily.ID)), tokenB,
		map[string]string{"text": "again"})
	defer dupResp.Body.Close()
	testutil.AssertErrorResponse(t, dupResp, http.StatusBadRequest, "already been answered")

	// C asks B another question; B's daily limit still blocks it today
	secondAsk := doJSON(t, http.MethodPost, ts.APIURL("/questions/user-question/"+userB.ID.String()), tokenC,
		map[string]string{"text": "And now?"})
	defer secondAsk.Body.Close()
	require.Equal(t, http.StatusOK, secondAsk.StatusCode)

	var second domain.Question
	testutil.AssertJSONResponse(t, secondAsk, &second)

	limitResp := doJSON(t, http.MethodPost, ts.APIURL(fmt.Sprintf("/questions/daily/%s/answer", second.ID)), tokenB,
		map[string]string{"text": "eager"})
	defer limitResp.Body.Close()
	testutil.AssertErrorResponse(t, limitResp, http.StatusBadRequest, "already answered a question today")
}

func TestQuestionHandler_AnswerErrors(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("unknown question", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL(fmt.Sprintf("/questions/daily/%s/answer", uuid.New())), token,
			map[string]string{"text": "hello?"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("empty answer text", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL(fmt.Sprintf("/questions/daily/%s/answer", uuid.New())), token,
			map[string]string{"text": ""})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	})

	t.Run("no token", func(t *testing.T) {
		resp := doJSON(t, http.MethodPost, ts.APIURL(fmt.Sprintf("/questions/daily/%s/answer", uuid.New())), "",
			map[string]string{"text": "hi"})
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}

func TestQuestionHandler_Ask_MissingRecipient(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	resp := doJSON(t, http.MethodPost, ts.APIURL("/questions/user-question/"+uuid.New().String()), token,
		map[string]string{"text": "Anyone there?"})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestQuestionHandler_Pagination(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, tokenAsker := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	recipient, tokenRecipient := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	for i := 0; i < 15; i++ {
		resp := doJSON(t, http.MethodPost, ts.APIURL("/questions/user-question/"+recipient.ID.String()), tokenAsker,
			map[string]string{"text": fmt.Sprintf("question %d", i)})
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	page1Resp := doJSON(t, http.MethodGet, ts.APIURL("/questions/received?skip=0&limit=10"), tokenRecipient, nil)
	defer page1Resp.Body.Close()
	require.Equal(t, http.StatusOK, page1Resp.StatusCode)

	var page1 []domain.Question
	testutil.AssertJSONResponse(t, page1Resp, &page1)
	require.Len(t, page1, 10)

	for i := 1; i < len(page1); i++ {
		assert.True(t, !page1[i-1].CreatedAt.Before(page1[i].CreatedAt), "expected newest-first ordering")
	}

	page2Resp := doJSON(t, http.MethodGet, ts.APIURL("/questions/received?skip=10&limit=10"), tokenRecipient, nil)
	defer page2Resp.Body.Close()
	require.Equal(t, http.StatusOK, page2Resp.StatusCode)

	var page2 []domain.Question
	testutil.AssertJSONResponse(t, page2Resp, &page2)
	assert.Len(t, page2, 5)

	// Sent listing mirrors from the asker's side
	sentResp := doJSON(t, http.MethodGet, ts.APIURL("/questions/sent"), tokenAsker, nil)
	defer sentResp.Body.Close()
	require.Equal(t, http.StatusOK, sentResp.StatusCode)

	var sent []domain.Question
	testutil.AssertJSONResponse(t, sentResp, &sent)
	assert.Len(t, sent, 15)
}
