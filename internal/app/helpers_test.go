package app

import (
	"github.com/jsamuelsen/quotevault/internal/domain"
	"github.com/jsamuelsen/quotevault/internal/ports"
)

// fakeSession is an in-memory ports.Session for service tests.
type fakeSession struct {
	user     string
	token    string
	language string
	flash    *domain.Flash
	saves    int
}

var _ ports.Session = (*fakeSession)(nil)

func (f *fakeSession) User() string        { return f.user }
func (f *fakeSession) SetUser(user string) { f.user = user }
func (f *fakeSession) ClearUser()          { f.user = "" }

func (f *fakeSession) Token() string         { return f.token }
func (f *fakeSession) SetToken(token string) { f.token = token }
func (f *fakeSession) ClearToken()           { f.token = "" }

func (f *fakeSession) Language() string        { return f.language }
func (f *fakeSession) SetLanguage(lang string) { f.language = lang }

func (f *fakeSession) SetFlash(flash domain.Flash) { f.flash = &flash }

func (f *fakeSession) PopFlash() (domain.Flash, bool) {
	if f.flash == nil {
		return domain.Flash{}, false
	}

	flash := *f.flash
	f.flash = nil

	return flash, true
}

func (f *fakeSession) Save() error {
	f.saves++
	return nil
}
