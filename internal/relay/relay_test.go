package relay_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"enigmasim/internal/domain"
	"enigmasim/internal/relay"
)

const token = "publish-token"

func newRelay(t *testing.T, tok string) *httptest.Server {
	t.Helper()
	srv, err := relay.NewServer(tok, nil)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestPublishFetchList(t *testing.T) {
	ts := newRelay(t, token)
	c := relay.NewHTTP(ts.URL+"/", token)
	ctx := context.Background()

	blobs := map[domain.KeySheetName]string{
		"bravo": `{"v":1,"cipher":"b"}`,
		"alpha": `{"v":1,"cipher":"a"}`,
	}
	for name, b := range blobs {
		if err := c.PublishKeySheet(ctx, name, []byte(b)); err != nil {
			t.Fatalf("PublishKeySheet %s: %v", name, err)
		}
	}
	got, err := c.FetchKeySheet(ctx, "alpha")
	if err != nil {
		t.Fatalf("FetchKeySheet: %v", err)
	}
	if string(got) != blobs["alpha"] {
		t.Fatalf("got %q, want %q", got, blobs["alpha"])
	}
	names, err := c.ListKeySheets(ctx)
	if err != nil {
		t.Fatalf("ListKeySheets: %v", err)
	}
	if want := []domain.KeySheetName{"alpha", "bravo"}; !reflect.DeepEqual(names, want) {
		t.Fatalf("names = %v, want %v", names, want)
	}
}

func TestFetch_Missing_IsNotFound(t *testing.T) {
	ts := newRelay(t, token)
	c := relay.NewHTTP(ts.URL, "")
	_, err := c.FetchKeySheet(context.Background(), "ghost")
	if !errors.Is(err, domain.ErrConfigurationNotFound) {
		t.Fatalf("err = %v, want ErrConfigurationNotFound", err)
	}
	var se *relay.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusNotFound || se.Method != http.MethodGet {
		t.Fatalf("err = %#v, want *StatusError 404 GET", err)
	}
}

func TestPublish_Unauthorised(t *testing.T) {
	ts := newRelay(t, token)
	ctx := context.Background()
	for _, tok := range []string{"", "wrong"} {
		c := relay.NewHTTP(ts.URL, tok)
		err := c.PublishKeySheet(ctx, "x", []byte(`{}`))
		var se *relay.StatusError
		if !errors.As(err, &se) || se.Status != http.StatusUnauthorized {
			t.Fatalf("token %q: err = %v, want 401", tok, err)
		}
	}
}

func TestPublish_DisabledWithoutToken(t *testing.T) {
	ts := newRelay(t, "")
	err := relay.NewHTTP(ts.URL, "anything").PublishKeySheet(context.Background(), "x", []byte(`{}`))
	var se *relay.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusForbidden {
		t.Fatalf("err = %v, want 403", err)
	}
}

func TestPublish_RejectsNonJSON(t *testing.T) {
	ts := newRelay(t, token)
	err := relay.NewHTTP(ts.URL, token).PublishKeySheet(context.Background(), "x", []byte("plain text"))
	var se *relay.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400", err)
	}
}

func TestPublish_RejectsOversizedBlob(t *testing.T) {
	ts := newRelay(t, token)
	big := `{"cipher":"` + strings.Repeat("A", 70<<10) + `"}`
	err := relay.NewHTTP(ts.URL, token).PublishKeySheet(context.Background(), "big", []byte(big))
	var se *relay.StatusError
	if !errors.As(err, &se) || se.Status != http.StatusRequestEntityTooLarge {
		t.Fatalf("err = %v, want 413", err)
	}
}

func TestClient_ValidatesNames(t *testing.T) {
	c := relay.NewHTTP("http://127.0.0.1:1", token)
	if _, err := c.FetchKeySheet(context.Background(), "../etc"); !errors.Is(err, domain.ErrInvalidKeySheetName) {
		t.Fatalf("err = %v, want ErrInvalidKeySheetName", err)
	}
}

func TestHealthz(t *testing.T) {
	ts := newRelay(t, "")
	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
}
