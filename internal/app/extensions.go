package app

// Extensions lists the registered extension dialects.
func (s Service) Extensions() []ExtensionInfo {
	descs := s.Registry.Descriptors()
	out := make([]ExtensionInfo, 0, len(descs))
	for _, desc := range descs {
		out = append(out, ExtensionInfo{
			Prefix:           desc.Prefix(),
			Namespace:        desc.NamespaceURI(),
			Version:          desc.Version(),
			DisplayName:      desc.DisplayName(),
			DocumentationURI: desc.DocumentationURI(),
			Description:      desc.Description(),
		})
	}
	return out
}
