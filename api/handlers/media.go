package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	cldapi "github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"go.uber.org/zap"

	"github.com/linesmerrill/lostfound-api/config"
)

// Media exported for testing purposes
type Media struct {
	Config config.Config
	Now    func() time.Time
}

// SignatureResponse holds the parameters a client needs for a signed upload
type SignatureResponse struct {
	Timestamp    string `json:"timestamp"`
	Signature    string `json:"signature"`
	APIKey       string `json:"apiKey"`
	CloudName    string `json:"cloudName"`
	UploadPreset string `json:"uploadPreset"`
}

// SignatureHandler generates a signature for Cloudinary uploads
func (m Media) SignatureHandler(w http.ResponseWriter, r *http.Request) {
	if m.Config.CloudinaryAPISecret == "" {
		config.ErrorStatus("image uploads are not configured", http.StatusServiceUnavailable, w, errors.New("missing cloudinary secret"))
		return
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	timestamp := strconv.FormatInt(now().Unix(), 10)

	params := url.Values{}
	params.Set("timestamp", timestamp)
	if m.Config.CloudinaryUploadPreset != "" {
		params.Set("upload_preset", m.Config.CloudinaryUploadPreset)
	}
	signature, err := cldapi.SignParameters(params, m.Config.CloudinaryAPISecret)
	if err != nil {
		config.ErrorStatus("failed to sign upload", http.StatusInternalServerError, w, err)
		return
	}

	writeJSON(w, http.StatusOK, SignatureResponse{
		Timestamp:    timestamp,
		Signature:    signature,
		APIKey:       m.Config.CloudinaryAPIKey,
		CloudName:    m.Config.CloudinaryCloudName,
		UploadPreset: m.Config.CloudinaryUploadPreset,
	})
}

// CloudinaryRemover destroys uploaded item photos when their item is removed
type CloudinaryRemover struct {
	cld       *cloudinary.Cloudinary
	cloudName string
}

// NewImageRemover returns a Cloudinary backed image remover, or nil when
// Cloudinary is not configured
func NewImageRemover(conf config.Config) (*CloudinaryRemover, error) {
	if conf.CloudinaryCloudName == "" || conf.CloudinaryAPIKey == "" || conf.CloudinaryAPISecret == "" {
		return nil, nil
	}
	cld, err := cloudinary.NewFromParams(conf.CloudinaryCloudName, conf.CloudinaryAPIKey, conf.CloudinaryAPISecret)
	if err != nil {
		return nil, err
	}
	return &CloudinaryRemover{cld: cld, cloudName: conf.CloudinaryCloudName}, nil
}

// RemoveImages destroys every image among refs hosted in the configured cloud.
// Other references and the shared placeholders are ignored.
func (c *CloudinaryRemover) RemoveImages(ctx context.Context, refs []string) error {
	var errs []error
	for _, ref := range refs {
		publicID, ok := publicIDFromURL(ref, c.cloudName)
		if !ok {
			continue
		}
		res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if res.Error.Message != "" {
			errs = append(errs, errors.New(res.Error.Message))
			continue
		}
		zap.S().Debugw("image destroyed", "publicId", publicID, "result", res.Result)
	}
	return errors.Join(errs...)
}

// doodleFolder holds the shared placeholder images
const doodleFolder = "doodles/"

// publicIDFromURL extracts the asset id from a delivery url of cloudName such as
// https://res.cloudinary.com/demo/image/upload/v1712/items/wallet.jpg.
// Placeholder doodles are never returned.
func publicIDFromURL(ref, cloudName string) (string, bool) {
	u, err := url.Parse(ref)
	if err != nil || cloudName == "" || (u.Host != "res.cloudinary.com" && !strings.HasSuffix(u.Host, ".cloudinary.com")) {
		return "", false
	}
	cloud, rest, found := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	if !found || cloud != cloudName {
		return "", false
	}
	_, rest, found = strings.Cut("/"+rest, "/upload/")
	if !found {
		return "", false
	}
	segments := strings.Split(rest, "/")
	for i, s := range segments {
		if len(s) > 1 && s[0] == 'v' {
			if _, err := strconv.ParseInt(s[1:], 10, 64); err == nil {
				segments = segments[i+1:]
				break
			}
		}
	}
	id := strings.Join(segments, "/")
	id = strings.TrimSuffix(id, path.Ext(id))
	if id == "" || strings.HasPrefix(id, doodleFolder) {
		return "", false
	}
	return id, true
}
