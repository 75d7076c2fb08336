/*
Package atomicfile writes files so that readers see either the old content
or the complete new content, never a partially written file.

	err := atomicfile.WriteFile("settings.json", data)

or, when writing in pieces:

	f, err := atomicfile.New(path)
	if err != nil {
		return err
	}
	// removes the temporary file on early return or panic
	defer f.Cancel()
	_, err = f.Write(data)
	if err != nil {
		return err
	}
	return f.Close()

Data goes to a temporary file in the destination directory. Close() syncs
it and renames it over the destination.
*/
package atomicfile
