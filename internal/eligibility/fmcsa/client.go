package fmcsa

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/haulware/carriergate/internal/config"
	"github.com/haulware/carriergate/internal/eligibility/domain"
)

const requestTimeout = 8 * time.Second

var errNonObjectBody = errors.New("registry returned a non-object body")

// Client queries the FMCSA company snapshot endpoint.
type Client struct {
	baseURL string
	webKey  string
	http    *http.Client
	log     *zap.Logger
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

func New(p Params) domain.Provider {
	return &Client{
		baseURL: p.Config.FMCSABaseURL,
		webKey:  p.Config.FMCSAWebKey,
		http:    &http.Client{Timeout: requestTimeout},
		log:     p.Log.Named("fmcsa.client"),
	}
}

func (c *Client) FetchSnapshot(ctx context.Context, mcNumber string) (domain.Snapshot, error) {
	endpoint := fmt.Sprintf("%scompanySnapshot?webKey=%s&mcNumber=%s",
		c.baseURL, url.QueryEscape(c.webKey), url.QueryEscape(mcNumber))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return domain.Snapshot{}, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		return domain.Snapshot{}, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.Snapshot{}, err
	}

	// A null or array body decodes cleanly into the struct, so object
	// shape has to be checked up front.
	body = bytes.TrimSpace(body)
	if len(body) == 0 || body[0] != '{' {
		return domain.Snapshot{}, errNonObjectBody
	}

	var payload snapshotPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.Snapshot{}, err
	}

	return payload.toDomain(mcNumber), nil
}

// snapshotPayload tolerates the registry's loose typing: flags arrive as
// strings, booleans or numbers depending on the record.
type snapshotPayload struct {
	MCNumber       flexString `json:"mcNumber"`
	LegalName      flexString `json:"legalName"`
	AllowToOperate flexString `json:"allowToOperate"`
	OutOfService   flexString `json:"outOfService"`
	SnapshotDate   flexString `json:"snapshotDate"`
}

func (p snapshotPayload) toDomain(mcNumber string) domain.Snapshot {
	snapshot := domain.Snapshot{
		MCNumber:       string(p.MCNumber),
		LegalName:      string(p.LegalName),
		AllowToOperate: string(p.AllowToOperate),
		OutOfService:   string(p.OutOfService),
		SnapshotDate:   string(p.SnapshotDate),
		Source:         domain.SourceLive,
	}
	if snapshot.MCNumber == "" {
		snapshot.MCNumber = mcNumber
	}
	return snapshot
}

type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		*f = flexString(t)
	case bool:
		*f = flexString(strconv.FormatBool(t))
	case float64:
		*f = flexString(strconv.FormatFloat(t, 'f', -1, 64))
	default:
		*f = ""
	}
	return nil
}
