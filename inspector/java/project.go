package java

import (
	"github.com/josongsong/semantica-codegraph/inspector/graph"
	"github.com/josongsong/semantica-codegraph/inspector/repository"
)

// InspectProject detects the project at location and inspects its Java packages into a graph.Project
func (i *Inspector) InspectProject(location string) (*graph.Project, error) {
	detector := repository.New()
	project := &graph.Project{}
	if detected, err := detector.DetectProject(location); err == nil {
		project.Name = detected.Name
		project.Type = detected.Type
		project.RootPath = detected.RootPath
		if detected.RootPath != "" {
			location = detected.RootPath
		}
	}
	if repo, err := detector.DetectRepository(location); err == nil {
		project.RepositoryURL = repo.Origin

	}
	var err error
	if project.Packages, err = i.InspectPackages(location); err != nil {
		return nil, err
	}

	project.Init()
	return project, nil
}
