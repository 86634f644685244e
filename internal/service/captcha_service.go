package service

import (
	"strings"
	"sync"
	"time"

	"github.com/lipai-ops/internal/config"

	"github.com/mojocn/base64Captcha"
)

// CaptchaImageChallenge 图片验证码挑战
type CaptchaImageChallenge struct {
	CaptchaID   string `json:"captchaId"`
	ImageBase64 string `json:"imageBase64"`
}

// CaptchaService 登录验证码服务，是否启用由配置决定
type CaptchaService struct {
	cfg config.CaptchaConfig

	mu    sync.Mutex
	store base64Captcha.Store
}

// NewCaptchaService 创建验证码服务
func NewCaptchaService(cfg config.CaptchaConfig) *CaptchaService {
	return &CaptchaService{cfg: cfg}
}

// LoginEnabled 登录是否要求验证码
func (s *CaptchaService) LoginEnabled() bool {
	return s != nil && s.cfg.LoginEnabled
}

// GenerateImageChallenge 生成图片验证码
func (s *CaptchaService) GenerateImageChallenge() (*CaptchaImageChallenge, error) {
	driver := base64Captcha.NewDriverString(
		s.cfg.Height,
		s.cfg.Width,
		s.cfg.NoiseCount,
		base64Captcha.OptionShowHollowLine,
		s.cfg.Length,
		"0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ",
		nil,
		base64Captcha.DefaultEmbeddedFonts,
		nil,
	)
	captcha := base64Captcha.NewCaptcha(driver, s.ensureStore())
	id, b64s, _, err := captcha.Generate()
	if err != nil {
		return nil, err
	}
	return &CaptchaImageChallenge{
		CaptchaID:   strings.TrimSpace(id),
		ImageBase64: strings.TrimSpace(b64s),
	}, nil
}

// VerifyLogin 登录验证码校验，未启用时直接放行
func (s *CaptchaService) VerifyLogin(captchaID, captchaCode string) error {
	if !s.LoginEnabled() {
		return nil
	}
	captchaID = strings.TrimSpace(captchaID)
	captchaCode = strings.TrimSpace(captchaCode)
	if captchaID == "" || captchaCode == "" {
		return ErrCaptchaInvalid
	}
	if !s.ensureStore().Verify(captchaID, captchaCode, true) {
		return ErrCaptchaInvalid
	}
	return nil
}

func (s *CaptchaService) ensureStore() base64Captcha.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store == nil {
		maxStore := s.cfg.MaxStore
		if maxStore <= 0 {
			maxStore = 10240
		}
		expire := s.cfg.ExpireSeconds
		if expire <= 0 {
			expire = 300
		}
		s.store = base64Captcha.NewMemoryStore(maxStore, time.Duration(expire)*time.Second)
	}
	return s.store
}
