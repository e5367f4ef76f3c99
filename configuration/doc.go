// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package configuration - parse a Lua configuration file
//
// most of base Lua is available such as reading files to set key data
// and getenv to extract environment supplied items.  The file must
// return a table, e.g.:
//
//   return {
//       data_directory = ".",
//       database = "catalogue.leveldb",
//       layout = {
//           record_size = 40,
//           payload_size = 128,
//           key_offset = 0,
//           key_length = 16,
//       },
//       max_nodes = 0,
//       cache = { expiry = 300, cleanup = 600 },
//       logging = {
//           directory = "log",
//           file = "avlindex.log",
//           size = 1048576,
//           count = 10,
//           levels = { DEFAULT = "info" },
//       },
//   }
package configuration
