package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comandapos/comanda-api/internal/domain"
	"github.com/comandapos/comanda-api/pkg/config"
)

func newTestStore(t *testing.T, maxSize int64) (*LocalLogoStore, string) {
	t.Helper()
	dir := t.TempDir()
	store := NewLocalLogoStore(config.StorageConfig{
		Dir:           dir,
		PublicBaseURL: "/uploads/",
		MaxUploadSize: maxSize,
	})
	return store, dir
}

func TestSaveLogo_GuardaYDevuelveURLPublica(t *testing.T) {
	store, dir := newTestStore(t, 1024)
	content := []byte("fake-png-bytes")

	url, err := store.SaveLogo("biz-1", "mi-logo.PNG", bytes.NewReader(content), int64(len(content)))
	require.NoError(t, err)
	assert.Equal(t, "/uploads/biz-1/logo.png", url, "extensión normalizada a minúsculas, base sin slash doble")

	written, err := os.ReadFile(filepath.Join(dir, "biz-1", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, content, written)
}

func TestSaveLogo_SubirDeNuevoReemplaza(t *testing.T) {
	store, dir := newTestStore(t, 1024)

	_, err := store.SaveLogo("biz-1", "v1.png", strings.NewReader("primera"), 7)
	require.NoError(t, err)
	_, err = store.SaveLogo("biz-1", "v2.png", strings.NewReader("segunda"), 7)
	require.NoError(t, err)

	written, err := os.ReadFile(filepath.Join(dir, "biz-1", "logo.png"))
	require.NoError(t, err)
	assert.Equal(t, "segunda", string(written), "el nombre en disco es fijo, subir de nuevo reemplaza")
}

func TestSaveLogo_ExtensionNoPermitida_Rechazada(t *testing.T) {
	store, _ := newTestStore(t, 1024)
	for _, name := range []string{"logo.svg", "logo.gif", "logo.pdf", "logo", "logo.png.exe"} {
		_, err := store.SaveLogo("biz-1", name, strings.NewReader("x"), 1)
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "extensión %q", name)
	}
}

func TestSaveLogo_TamanoDeclaradoExcesivo_Rechazado(t *testing.T) {
	store, _ := newTestStore(t, 10)
	_, err := store.SaveLogo("biz-1", "logo.png", strings.NewReader("x"), 11)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSaveLogo_BodyMasGrandeQueLoDeclarado_Rechazado(t *testing.T) {
	store, dir := newTestStore(t, 10)

	// Declara 5 bytes pero el body trae 20: se detecta y se borra el parcial
	_, err := store.SaveLogo("biz-1", "logo.png", strings.NewReader(strings.Repeat("a", 20)), 5)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, statErr := os.Stat(filepath.Join(dir, "biz-1", "logo.png"))
	assert.True(t, os.IsNotExist(statErr), "el archivo parcial no queda en disco")
}

func TestSaveLogo_TamanoCero_Rechazado(t *testing.T) {
	store, _ := newTestStore(t, 1024)
	_, err := store.SaveLogo("biz-1", "logo.png", strings.NewReader(""), 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
