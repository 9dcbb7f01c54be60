package resource

import "fmt"

// CMUDict names the CMU pronouncing dictionary resource.
const CMUDict = "cmudict"

type Manifest struct {
	Name  string `json:"name"`
	Files []File `json:"files"`
}

type File struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	// SHA256 pins the expected checksum. Empty trusts the first download and
	// pins it in the local lock manifest.
	SHA256 string `json:"sha256"`
}

func PinnedManifest(name string) (Manifest, error) {
	switch name {
	case CMUDict:
		return Manifest{
			Name: name,
			Files: []File{
				{
					Filename: "cmudict.dict",
					URL:      "https://raw.githubusercontent.com/cmusphinx/cmudict/master/cmudict.dict",
				},
			},
		}, nil
	default:
		return Manifest{}, fmt.Errorf("no pinned manifest for resource %q", name)
	}
}
