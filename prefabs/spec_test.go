package prefabs

import (
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadPossessionSpec(t *testing.T) {
	spec, err := LoadPossessionSpec()
	require.NoError(t, err)
	assert.Equal(t, 0.15, spec.FadeDuration)
	assert.Equal(t, "player", spec.Rig)
	assert.Equal(t, "player_camera", spec.Camera)
	assert.Equal(t, "drone_camera", spec.Viewpoint)
	assert.Equal(t, "stand_in.yaml", spec.StandInPrefab)
	assert.Contains(t, spec.HideObjects, "player_hands")
	assert.NotContains(t, spec.PossessedCullingMask, "hands")
	assert.Empty(t, spec.Pursuer)
}

func TestEmbeddedPrefabsParse(t *testing.T) {
	for _, name := range []string{"rig.yaml", "drone.yaml", "stand_in.yaml", "pillar.yaml"} {
		spec, err := LoadEntityBuildSpec(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, spec.Name, name)
		assert.NotEmpty(t, spec.Components, name)
	}

	rig, err := LoadEntityBuildSpec("prefabs/rig.yaml")
	require.NoError(t, err)
	require.Len(t, rig.Children, 2)
	cam, err := DecodeComponentSpec[CameraComponentSpec](rig.Children[0].Components["camera"])
	require.NoError(t, err)
	assert.True(t, cam.Main)
	assert.Equal(t, []string{"default", "hands", "drone"}, cam.CullingMask)
}

func TestLoadSceneSpec(t *testing.T) {
	scene, err := LoadSceneSpec("scene.yaml")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(scene.Entries), 2)
	assert.Equal(t, "rig.yaml", scene.Entries[0].Prefab)
	assert.Nil(t, scene.Entries[0].Position)
	require.NotNil(t, scene.Entries[2].Position)
	assert.Equal(t, Vec3Spec{X: 4, Z: 8}, *scene.Entries[2].Position)
}

func TestLoadScript(t *testing.T) {
	for _, name := range []string{"drone_pursuit.tengo", "scripts/drone_pursuit.tengo", "prefabs/scripts/drone_pursuit.tengo"} {
		src, err := LoadScript(name)
		require.NoError(t, err, name)
		assert.Contains(t, string(src), "steer :=")
	}
	_, err := LoadScript("missing.tengo")
	assert.Error(t, err)
}

func TestDecodeComponentSpecNil(t *testing.T) {
	v, err := DecodeComponentSpec[VisualComponentSpec](nil)
	require.NoError(t, err)
	assert.Equal(t, VisualComponentSpec{}, v)
}

func TestYAMLColor(t *testing.T) {
	var out struct {
		C YAMLColor `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(`c: "#10203040"`), &out))
	assert.Equal(t, color.NRGBA{R: 0x10, G: 0x20, B: 0x30, A: 0x40}, out.C.Color)

	_, err := ParseHexColor("#abc")
	assert.Error(t, err)
	_, err = ParseHexColor("zzzzzz")
	assert.Error(t, err)
}

func TestSourcePrefersOverrideDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "scripts"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "scripts", "a.tengo"), []byte("edited"), 0o644))

	src := &Source{Dir: dir, Embedded: fstest.MapFS{
		"scripts/a.tengo": {Data: []byte("shipped")},
		"b.yaml":          {Data: []byte("name: b")},
	}}

	got, err := src.Read(scriptPath("prefabs/scripts/a.tengo"))
	require.NoError(t, err)
	assert.Equal(t, "edited", string(got))

	got, err = src.Read(prefabPath("prefabs/b.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "name: b", string(got))

	_, err = src.Read("missing.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)

	bare := &Source{}
	_, err = bare.Read("b.yaml")
	assert.ErrorIs(t, err, os.ErrNotExist)
}
