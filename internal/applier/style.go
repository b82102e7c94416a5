package applier

// StyleID is the id of the style element injected for a theme.
func StyleID(themeID string) string {
	return StyleIDPrefix + themeID
}

// InjectStyle writes the current theme's full CSS into a single style
// element, inside the element with id containerID or the document head when
// containerID is empty or unknown. Repeated calls replace the element's
// content instead of adding elements. It reports whether an element was
// written.
func (c *Controller) InjectStyle(containerID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.doc == nil || c.state.Theme == nil {
		return false
	}
	theme := *c.state.Theme
	id := StyleID(theme.ID)

	parent := c.doc.Head()
	if containerID != "" {
		if container := c.doc.GetElementByID(containerID); container != nil {
			parent = container
		}
	}
	if parent == nil {
		return false
	}

	// A previous theme's element goes away; the same theme's element is reused.
	if c.style != nil && c.style.ID() != id {
		c.detachStyle()
	}

	el := c.style
	if el == nil {
		el = c.doc.GetElementByID(id)
	}
	if el == nil {
		el = c.doc.CreateElement("style")
		el.SetAttribute("id", id)
	}
	el.SetAttribute(AttrRuntimeTheme, theme.ID)
	el.SetText(c.state.GeneratedCSS)

	if c.styleParent != nil && c.styleParent != parent {
		c.styleParent.RemoveChild(el)
	}
	parent.AppendChild(el)

	c.style = el
	c.styleParent = parent
	return true
}

// RemoveStyle detaches the injected style element, if any.
func (c *Controller) RemoveStyle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.detachStyle()
}

func (c *Controller) detachStyle() {
	if c.style == nil {
		return
	}
	if c.styleParent != nil {
		c.styleParent.RemoveChild(c.style)
	}
	c.style = nil
	c.styleParent = nil
}
