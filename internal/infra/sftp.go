package infra

import (
	"fmt"
	"io"
	"os"
	"path"

	"farmavita/internal/config"

	"github.com/pkg/sftp"
	"golang.org/x/crypto/ssh"
)

// SFTPUploader pushes generated report files to the accounting SFTP drop.
// Disabled when no host is configured.
type SFTPUploader struct {
	host      string
	port      int
	user      string
	password  string
	remoteDir string
}

func NewSFTPUploader(cfg *config.Config) *SFTPUploader {
	return &SFTPUploader{
		host:      cfg.SFTPHost,
		port:      cfg.SFTPPort,
		user:      cfg.SFTPUser,
		password:  cfg.SFTPPassword,
		remoteDir: cfg.SFTPRemoteDir,
	}
}

// Enabled reports whether an SFTP host was configured.
func (u *SFTPUploader) Enabled() bool {
	return u.host != ""
}

func (u *SFTPUploader) connect() (*sftp.Client, *ssh.Client, error) {
	sshConfig := &ssh.ClientConfig{
		User: u.user,
		Auth: []ssh.AuthMethod{
			ssh.Password(u.password),
		},
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
	}

	sshConn, err := ssh.Dial("tcp", fmt.Sprintf("%s:%d", u.host, u.port), sshConfig)
	if err != nil {
		return nil, nil, fmt.Errorf("sftp: dial: %w", err)
	}

	client, err := sftp.NewClient(sshConn)
	if err != nil {
		sshConn.Close()
		return nil, nil, fmt.Errorf("sftp: client: %w", err)
	}
	return client, sshConn, nil
}

// Upload copies localPath to remoteDir keeping the base file name.
func (u *SFTPUploader) Upload(localPath string) error {
	client, sshConn, err := u.connect()
	if err != nil {
		return err
	}
	defer sshConn.Close()
	defer client.Close()

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("sftp: open local: %w", err)
	}
	defer src.Close()

	if err := client.MkdirAll(u.remoteDir); err != nil {
		return fmt.Errorf("sftp: mkdir remote: %w", err)
	}

	remotePath := path.Join(u.remoteDir, path.Base(localPath))
	dst, err := client.Create(remotePath)
	if err != nil {
		return fmt.Errorf("sftp: create remote: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("sftp: copy: %w", err)
	}
	return nil
}
