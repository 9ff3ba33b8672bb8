package assets

import "embed"

// FixturesFS embeds the seed fixtures shipped with the admin CLI.
//
//go:embed fixtures/*.yaml
var FixturesFS embed.FS

// SampleFixture is the path of the default seed file inside FixturesFS.
const SampleFixture = "fixtures/sample.yaml"
