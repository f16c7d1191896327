package browser

import (
	"fmt"
	"net/url"
	"time"
)

// BrowserType selects the playwright engine used for a rendered fetch.
type BrowserType string

const (
	BrowserChromium BrowserType = "chromium"
	BrowserFirefox  BrowserType = "firefox"
	BrowserWebkit   BrowserType = "webkit"
)

func ParseBrowserType(raw string) (BrowserType, error) {
	switch BrowserType(raw) {
	case BrowserChromium, BrowserFirefox, BrowserWebkit:
		return BrowserType(raw), nil
	default:
		return "", fmt.Errorf("unknown browser type: %q", raw)
	}
}

// WaitStrategy maps to playwright's wait-until page states.
type WaitStrategy string

const (
	WaitLoad             WaitStrategy = "load"
	WaitDOMContentLoaded WaitStrategy = "domcontentloaded"
	WaitNetworkIdle      WaitStrategy = "networkidle"
)

func ParseWaitStrategy(raw string) (WaitStrategy, error) {
	switch WaitStrategy(raw) {
	case WaitLoad, WaitDOMContentLoaded, WaitNetworkIdle:
		return WaitStrategy(raw), nil
	default:
		return "", fmt.Errorf("unknown wait strategy: %q", raw)
	}
}

type LaunchParam struct {
	fetchUrl       url.URL
	browserType    BrowserType
	headless       bool
	waitFor        WaitStrategy
	timeout        time.Duration
	useUserProfile bool
}

func NewLaunchParam(
	fetchUrl url.URL,
	browserType BrowserType,
	headless bool,
	waitFor WaitStrategy,
	timeout time.Duration,
	useUserProfile bool,
) LaunchParam {
	return LaunchParam{
		fetchUrl:       fetchUrl,
		browserType:    browserType,
		headless:       headless,
		waitFor:        waitFor,
		timeout:        timeout,
		useUserProfile: useUserProfile,
	}
}

func (p LaunchParam) URL() url.URL {
	return p.fetchUrl
}

func (p LaunchParam) BrowserType() BrowserType {
	return p.browserType
}

func (p LaunchParam) Headless() bool {
	return p.headless
}

func (p LaunchParam) WaitFor() WaitStrategy {
	return p.waitFor
}

func (p LaunchParam) Timeout() time.Duration {
	return p.timeout
}

func (p LaunchParam) UseUserProfile() bool {
	return p.useUserProfile
}
