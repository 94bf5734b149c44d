// Package smb implements the remote transport on top of SMB2/3 using
// github.com/hirochachacha/go-smb2. Credentials live in memory for the
// lifetime of the session only; nothing is written to disk.
package smb

import (
	"context"
	"io"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/hirochachacha/go-smb2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"golang.org/x/sync/errgroup"

	"github.com/KiranTheRam/SnapVault/pkg/remote"
)

const defaultPort = 445

// 🔧 Dialer holds everything needed to open a session against one NAS host
type Dialer struct {
	Host     string
	Port     int
	Username string
	Password string
	Domain   string
	Timeout  time.Duration
}

// 🏭 Dial opens a TCP connection and negotiates an authenticated SMB session.
// The context bounds the TCP dial; the NTLM handshake rides on the same
// connection.
func (d *Dialer) Dial(ctx context.Context) (remote.Session, error) {
	port := d.Port
	if port == 0 {
		port = defaultPort
	}
	addr := net.JoinHostPort(d.Host, strconv.Itoa(port))

	dialCtx := ctx
	if d.Timeout > 0 {
		var cancel context.CancelFunc
		dialCtx, cancel = context.WithTimeout(ctx, d.Timeout)
		defer cancel()
	}

	zerolog.Ctx(ctx).Debug().Str("addr", addr).Msg("dialing NAS")

	var nd net.Dialer
	conn, err := nd.DialContext(dialCtx, "tcp", addr)
	if err != nil {
		return nil, errors.Errorf("dialing %s: %w", addr, err)
	}

	sd := &smb2.Dialer{
		Initiator: &smb2.NTLMInitiator{
			User:     d.Username,
			Password: d.Password,
			Domain:   d.Domain,
		},
	}

	sess, err := sd.Dial(conn)
	if err != nil {
		conn.Close()
		return nil, errors.Errorf("negotiating SMB session with %s: %w", addr, err)
	}

	return &session{conn: conn, sess: sess}, nil
}

// 🎮 session wraps an authenticated go-smb2 session
type session struct {
	conn net.Conn
	sess *smb2.Session
}

func (s *session) Mount(name string) (remote.Share, error) {
	fs, err := s.sess.Mount(name)
	if err != nil {
		return nil, errors.Errorf("mounting share %s: %w", name, err)
	}
	return &share{name: name, fs: fs}, nil
}

func (s *session) Logoff() error {
	err := s.sess.Logoff()
	s.conn.Close()
	if err != nil {
		return errors.Errorf("logging off: %w", err)
	}
	return nil
}

// 📁 share adapts *smb2.Share to the remote.Share capability
type share struct {
	name string
	fs   *smb2.Share
}

func (s *share) Mkdir(path string) error {
	return s.fs.Mkdir(path, 0o755)
}

func (s *share) Create(path string) (io.WriteCloser, error) {
	return s.fs.Create(path)
}

func (s *share) Umount() error {
	return s.fs.Umount()
}

// 🔗 MountAll mounts every named share on the session. Mounts are independent
// remote calls, so they run concurrently; the result map is keyed by share
// name. On any failure the successfully mounted shares are unmounted before
// returning.
func MountAll(ctx context.Context, sess remote.Session, names []string) (map[string]remote.Share, error) {
	var mu sync.Mutex
	shares := make(map[string]remote.Share, len(names))

	g, _ := errgroup.WithContext(ctx)
	for _, name := range names {
		name := name
		g.Go(func() error {
			sh, err := sess.Mount(name)
			if err != nil {
				return err
			}
			mu.Lock()
			shares[name] = sh
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		for _, sh := range shares {
			_ = sh.Umount()
		}
		return nil, err
	}
	return shares, nil
}
