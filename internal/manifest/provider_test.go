package manifest

import (
	"context"
	"errors"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mvngraph/internal/model"
)

func newFS(t *testing.T, files map[string]string) billy.Filesystem {
	t.Helper()
	fsys := memfs.New()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fsys, name, []byte(content), 0o644))
	}
	return fsys
}

func newReader(t *testing.T, files map[string]string) *Reader {
	t.Helper()
	r, err := NewReader(newFS(t, files), 8)
	require.NoError(t, err)
	return r
}

const parentPOM = `<project>
  <groupId>com.acme</groupId>
  <artifactId>acme-parent</artifactId>
  <version>2.1.0</version>
  <packaging>pom</packaging>
  <properties>
    <codegen.phase>generate-sources</codegen.phase>
    <shared.group>${project.groupId}</shared.group>
  </properties>
  <modules>
    <module>core</module>
    <module>app</module>
  </modules>
  <dependencies>
    <dependency>
      <groupId>org.junit.jupiter</groupId>
      <artifactId>junit-jupiter</artifactId>
      <scope>test</scope>
    </dependency>
  </dependencies>
  <build>
    <pluginManagement>
      <plugins>
        <plugin>
          <groupId>org.codehaus.mojo</groupId>
          <artifactId>exec-maven-plugin</artifactId>
          <version>3.1.0</version>
          <executions>
            <execution>
              <id>gen</id>
              <phase>${codegen.phase}</phase>
              <goals><goal>java</goal></goals>
            </execution>
          </executions>
        </plugin>
      </plugins>
    </pluginManagement>
    <plugins>
      <plugin>
        <artifactId>maven-surefire-plugin</artifactId>
      </plugin>
      <plugin>
        <artifactId>maven-enforcer-plugin</artifactId>
        <inherited>false</inherited>
      </plugin>
    </plugins>
  </build>
</project>`

const corePOM = `<project>
  <parent>
    <groupId>com.acme</groupId>
    <artifactId>acme-parent</artifactId>
    <version>2.1.0</version>
  </parent>
  <artifactId>core</artifactId>
  <dependencies>
    <dependency>
      <groupId>${shared.group}</groupId>
      <artifactId>util</artifactId>
      <version>${project.version}</version>
    </dependency>
  </dependencies>
  <build>
    <plugins>
      <plugin>
        <groupId>org.codehaus.mojo</groupId>
        <artifactId>exec-maven-plugin</artifactId>
      </plugin>
    </plugins>
  </build>
</project>`

func TestReader_Resolve_Effective(t *testing.T) {
	r := newReader(t, map[string]string{
		"pom.xml":      parentPOM,
		"core/pom.xml": corePOM,
	})

	p, err := r.Resolve(context.Background(), "./core/pom.xml")
	require.NoError(t, err)

	assert.False(t, p.Degraded)
	assert.Equal(t, model.Coordinate{GroupID: "com.acme", ArtifactID: "core"}, p.Coordinate)
	assert.Equal(t, "2.1.0", p.Version)
	assert.Equal(t, "core/pom.xml", p.ManifestPath)
	assert.Equal(t, "core", p.Root)
	assert.Equal(t, "com.acme", p.ParentGroupID)
	assert.Equal(t, "jar", p.PackagingOrDefault())
	assert.Empty(t, p.Modules, "modules are not inherited")

	require.Len(t, p.Dependencies, 2)
	assert.Equal(t, model.Dependency{GroupID: "com.acme", ArtifactID: "util", Version: "2.1.0", Scope: "compile"}, p.Dependencies[0])
	assert.Equal(t, "junit-jupiter", p.Dependencies[1].ArtifactID)

	keys := make([]string, 0, len(p.Plugins))
	for _, pl := range p.Plugins {
		keys = append(keys, pl.Key())
	}
	assert.Equal(t, []string{
		"org.codehaus.mojo:exec-maven-plugin",
		"org.apache.maven.plugins:maven-surefire-plugin",
	}, keys, "own plugins first, non-inheritable plugins dropped")

	require.Len(t, p.Plugins[0].Executions, 1, "pluginManagement executions are applied")
	assert.Equal(t, model.Execution{ID: "gen", Phase: "generate-sources", Goals: []string{"java"}}, p.Plugins[0].Executions[0])
	assert.Equal(t, "3.1.0", p.Plugins[0].Version)
}

func TestReader_Resolve_RootAggregator(t *testing.T) {
	r := newReader(t, map[string]string{"pom.xml": parentPOM})

	p, err := r.Resolve(context.Background(), "pom.xml")
	require.NoError(t, err)
	assert.Equal(t, ".", p.Root)
	assert.Equal(t, []string{"core", "app"}, p.Modules)
	assert.True(t, p.IsAggregator())
	require.Len(t, p.Plugins, 2)
	assert.Equal(t, "maven-enforcer-plugin", p.Plugins[1].ArtifactID, "the declaring project keeps its own non-inheritable plugin")
}

func TestReader_Resolve_ExternalParent(t *testing.T) {
	r := newReader(t, map[string]string{
		"svc/pom.xml": `<project>
  <parent>
    <groupId>org.springframework.boot</groupId>
    <artifactId>spring-boot-starter-parent</artifactId>
    <version>3.3.0</version>
    <relativePath/>
  </parent>
  <groupId>com.acme</groupId>
  <artifactId>svc</artifactId>
</project>`,
	})

	p, err := r.Resolve(context.Background(), "svc/pom.xml")
	require.NoError(t, err)
	assert.False(t, p.Degraded)
	assert.Equal(t, "com.acme:svc", p.Coordinate.String())
	assert.Equal(t, "3.3.0", p.Version)
	assert.Equal(t, "org.springframework.boot", p.ParentGroupID)
}

func TestReader_Resolve_DegradedFallback(t *testing.T) {
	r := newReader(t, map[string]string{
		"lib/pom.xml": `<project>
  <parent>
    <groupId>com.acme</groupId>
    <artifactId>bom</artifactId>
    <version>1</version>
    <relativePath/>
  </parent>
  <artifactId>lib</artifactId>
  <packaging>${lib.packaging}</packaging>
</project>`,
	})

	p, err := r.Resolve(context.Background(), "lib/pom.xml")
	require.NoError(t, err)
	assert.True(t, p.Degraded)
	assert.Equal(t, "com.acme:lib", p.Coordinate.String(), "raw reading borrows the parent group")
	assert.Equal(t, "${lib.packaging}", p.Packaging)
}

func TestReader_Resolve_Errors(t *testing.T) {
	r := newReader(t, map[string]string{"broken/pom.xml": "<project><artifactId>"})

	_, err := r.Resolve(context.Background(), "missing/pom.xml")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = r.Resolve(context.Background(), "broken/pom.xml")
	assert.ErrorIs(t, err, ErrParse)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestReader_Resolve_BrokenParentDegrades(t *testing.T) {
	r := newReader(t, map[string]string{
		"pom.xml":      "<project><artifactId>",
		"core/pom.xml": corePOM,
	})

	p, err := r.Resolve(context.Background(), "core/pom.xml")
	require.NoError(t, err)
	assert.True(t, p.Degraded)
	assert.Equal(t, "com.acme:core", p.Coordinate.String())
}

func TestReader_CachesParsedManifests(t *testing.T) {
	fsys := newFS(t, map[string]string{"pom.xml": parentPOM})
	r, err := NewReader(fsys, 0)
	require.NoError(t, err)

	_, err = r.Resolve(context.Background(), "pom.xml")
	require.NoError(t, err)
	require.NoError(t, fsys.Remove("pom.xml"))

	p, err := r.Resolve(context.Background(), "pom.xml")
	require.NoError(t, err, "second read is served from the cache")
	assert.Equal(t, "acme-parent", p.ArtifactID)
}

func TestInterpolator(t *testing.T) {
	in := newInterpolator(map[string]string{
		"a":    "${b}-x",
		"b":    "value",
		"loop": "${loop}",
	})

	v, err := in.expand("pre-${a}")
	require.NoError(t, err)
	assert.Equal(t, "pre-value-x", v)

	v, err = in.expand("${missing}/${b}")
	assert.ErrorContains(t, err, "${missing}")
	assert.Equal(t, "${missing}/value", v)

	_, err = in.expand("${loop}")
	assert.ErrorContains(t, err, "recursive")
}

func TestParentManifestPath(t *testing.T) {
	empty := ""
	dir := "../shared"

	p, ok := parentManifestPath("core/pom.xml", &ParentRef{})
	assert.True(t, ok)
	assert.Equal(t, "pom.xml", p)

	p, ok = parentManifestPath("a/b/pom.xml", &ParentRef{RelativePath: &dir})
	assert.True(t, ok)
	assert.Equal(t, "a/shared/pom.xml", p)

	_, ok = parentManifestPath("a/pom.xml", &ParentRef{RelativePath: &empty})
	assert.False(t, ok)

	_, ok = parentManifestPath("pom.xml", &ParentRef{})
	assert.False(t, ok, "the workspace root has no local parent")
}
