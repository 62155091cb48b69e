package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/contosparadormir/contos/internal/music"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMusic_ListAndDelete(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	w := env.do(t, http.MethodGet, "/api/music", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())

	old, err := music.Import(ctx, env.store, "Lullaby", "https://cdn.example/l.mp3", time.UnixMilli(1000))
	require.NoError(t, err)
	recent, err := music.Import(ctx, env.store, "Rain", "https://cdn.example/r.mp3", time.UnixMilli(2000))
	require.NoError(t, err)

	w = env.do(t, http.MethodGet, "/api/music", nil, nil)
	var list []music.Music
	decodeBody(t, w, &list)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID)
	assert.Equal(t, old.ID, list[1].ID)

	w = env.do(t, http.MethodDelete, "/api/music/"+old.ID, nil, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	cookie := env.login(t)
	w = env.do(t, http.MethodDelete, "/api/music/"+old.ID, nil, cookie)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/api/music/"+old.ID, nil, cookie)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Music not found"}`, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/music", nil, nil)
	list = nil
	decodeBody(t, w, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Rain", list[0].Name)
}

func TestMusic_NoCreateRoute(t *testing.T) {
	env := newTestEnv(t, nil)
	cookie := env.login(t)
	w := env.do(t, http.MethodPost, "/api/music", map[string]string{"name": "x", "url": "https://x"}, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
